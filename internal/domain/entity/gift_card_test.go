package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
)

func newCard(balance string) *GiftCard {
	b, _ := decimal.NewFromString(balance)
	return &GiftCard{
		ID: "gc-1", Code: "GC-1",
		InitialAmount: b, Balance: b, Currency: "GTQ",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
		State:     CardActive,
		CreatedBy: "admin",
	}
}

func TestParseCardState(t *testing.T) {
	for _, s := range []string{"ACTIVE", "DEPLETED", "EXPIRED", "VOIDED"} {
		got, err := ParseCardState(s)
		require.NoError(t, err)
		assert.Equal(t, CardState(s), got)
	}

	_, err := ParseCardState("FROZEN")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = ParseCardState("active")
	assert.Error(t, err, "las etiquetas distinguen mayúsculas")
}

func TestRedeem_TransicionADepleted(t *testing.T) {
	card := newCard("100")
	now := time.Now()

	require.NoError(t, card.Redeem(decimal.NewFromInt(100), "caja1", now))
	assert.Equal(t, CardDepleted, card.State)
	assert.True(t, card.Balance.IsZero())
	require.NotNil(t, card.ModifiedBy)
	assert.Equal(t, "caja1", *card.ModifiedBy)
}

func TestRedeem_MontoInvalido(t *testing.T) {
	card := newCard("100")
	err := card.Redeem(decimal.Zero, "caja1", time.Now())
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	err = card.Redeem(decimal.NewFromInt(-5), "caja1", time.Now())
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRedeem_EstadosTerminales(t *testing.T) {
	card := newCard("100")
	card.State = CardVoided
	err := card.Redeem(decimal.NewFromInt(10), "caja1", time.Now())
	assert.Equal(t, domain.ErrInvalidCardState, err)

	card.State = CardExpired
	err = card.Redeem(decimal.NewFromInt(10), "caja1", time.Now())
	assert.Equal(t, domain.ErrInvalidCardState, err)
}

func TestExpireIfDue(t *testing.T) {
	card := newCard("100")
	now := time.Now()

	assert.False(t, card.ExpireIfDue("sistema", now), "aún vigente")

	card.ExpiresAt = now.Add(-time.Minute)
	assert.True(t, card.ExpireIfDue("sistema", now))
	assert.Equal(t, CardExpired, card.State)

	// Idempotente: ya expirada no vuelve a transicionar.
	assert.False(t, card.ExpireIfDue("sistema", now))
}

func TestVoid(t *testing.T) {
	card := newCard("100")
	require.NoError(t, card.Void("admin", time.Now()))
	assert.Equal(t, CardVoided, card.State)

	err := card.Void("admin", time.Now())
	assert.Equal(t, domain.KindStateTransition, domain.KindOf(err))
}

func TestUpdate_ClampDeSaldo(t *testing.T) {
	card := newCard("100")
	exp := time.Now().Add(48 * time.Hour)

	require.NoError(t, card.Update(decimal.NewFromInt(60), "GTQ", exp, nil, "admin", time.Now()))
	assert.True(t, card.InitialAmount.Equal(decimal.NewFromInt(60)))
	assert.True(t, card.Balance.Equal(decimal.NewFromInt(60)))

	// Subir el monto no infla el saldo ya consumido.
	require.NoError(t, card.Redeem(decimal.NewFromInt(20), "caja1", time.Now()))
	require.NoError(t, card.Update(decimal.NewFromInt(200), "GTQ", exp, nil, "admin", time.Now()))
	assert.True(t, card.Balance.Equal(decimal.NewFromInt(40)))
}

func TestUpdate_RechazadaEnTerminales(t *testing.T) {
	exp := time.Now().Add(48 * time.Hour)

	card := newCard("100")
	card.State = CardVoided
	err := card.Update(decimal.NewFromInt(60), "GTQ", exp, nil, "admin", time.Now())
	assert.Equal(t, domain.KindStateTransition, domain.KindOf(err))

	card = newCard("100")
	card.State = CardExpired
	err = card.Update(decimal.NewFromInt(60), "GTQ", exp, nil, "admin", time.Now())
	assert.Equal(t, domain.KindStateTransition, domain.KindOf(err))
}
