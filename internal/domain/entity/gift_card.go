package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
)

// CardState es el estado de ciclo de vida de una gift card (enumeración cerrada).
type CardState string

const (
	CardActive   CardState = "ACTIVE"
	CardDepleted CardState = "DEPLETED"
	CardExpired  CardState = "EXPIRED"
	CardVoided   CardState = "VOIDED"
)

// ParseCardState valida una etiqueta de estado; rechaza cualquier valor fuera
// del conjunto reconocido.
func ParseCardState(s string) (CardState, error) {
	switch CardState(s) {
	case CardActive, CardDepleted, CardExpired, CardVoided:
		return CardState(s), nil
	}
	return "", domain.Validation("estado de tarjeta no reconocido: " + s)
}

// GiftCard con su saldo y estado. Invariante: 0 <= Balance <= InitialAmount.
// Todas las mutaciones pasan por los métodos de transición y estampan auditoría.
type GiftCard struct {
	ID            string
	Code          string
	InitialAmount decimal.Decimal
	Balance       decimal.Decimal
	Currency      string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	State         CardState
	CreatedBy     string
	CreatedAt     time.Time
	ModifiedBy    *string
	ModifiedAt    *time.Time
}

func (g *GiftCard) stamp(by string, now time.Time) {
	g.ModifiedBy = &by
	g.ModifiedAt = &now
}

// ExpireIfDue marca la tarjeta como expirada si ya pasó su fecha de expiración.
// El cambio de estado se persiste aunque la operación que lo detectó falle.
func (g *GiftCard) ExpireIfDue(by string, now time.Time) bool {
	if now.After(g.ExpiresAt) && g.State != CardExpired {
		g.State = CardExpired
		g.stamp(by, now)
		return true
	}
	return false
}

// Redeem descuenta monto del saldo. Agotada la tarjeta (saldo 0) pasa a DEPLETED.
func (g *GiftCard) Redeem(amount decimal.Decimal, by string, now time.Time) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.Validation("el monto debe ser mayor a cero")
	}
	if g.State == CardVoided || g.State == CardExpired {
		return domain.ErrInvalidCardState
	}
	if amount.GreaterThan(g.Balance) {
		return domain.ErrInsufficientBalance
	}
	g.Balance = g.Balance.Sub(amount)
	if g.Balance.IsZero() {
		g.State = CardDepleted
	}
	g.stamp(by, now)
	return nil
}

// Void anula la tarjeta (terminal). Falla si ya estaba anulada.
func (g *GiftCard) Void(by string, now time.Time) error {
	if g.State == CardVoided {
		return &domain.Error{Kind: domain.KindStateTransition, Message: "la tarjeta ya está anulada"}
	}
	g.State = CardVoided
	g.stamp(by, now)
	return nil
}

// Update modifica monto, moneda, expiración y opcionalmente estado.
// No permitido sobre tarjetas anuladas o expiradas. El saldo se ajusta para
// mantener 0 <= Balance <= InitialAmount cuando el monto inicial se reduce.
func (g *GiftCard) Update(amount decimal.Decimal, currency string, expiresAt time.Time, state *CardState, by string, now time.Time) error {
	if g.State == CardVoided || g.State == CardExpired {
		return &domain.Error{Kind: domain.KindStateTransition, Message: "no se puede modificar una tarjeta anulada o expirada"}
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domain.Validation("el monto inicial debe ser mayor a cero")
	}
	g.InitialAmount = amount
	if g.Balance.GreaterThan(amount) {
		g.Balance = amount
	}
	g.Currency = currency
	g.ExpiresAt = expiresAt
	if state != nil {
		g.State = *state
	}
	g.stamp(by, now)
	return nil
}
