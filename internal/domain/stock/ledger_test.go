package stock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestNewRecord(t *testing.T) {
	now := time.Now()
	rec := NewRecord("prod-1", "sup-1", "br-1", nil, "L001",
		dec("10"), dec("4.00"), dec("0.25"), now)

	assert.True(t, rec.QuantityOnHand.Equal(dec("10")))
	assert.True(t, rec.UnitCost.Equal(dec("4.00")))
	assert.True(t, rec.UnitPrice.Equal(dec("5.00")), "precio %s", rec.UnitPrice)
	assert.True(t, rec.Active)
	assert.Equal(t, now, rec.LastPurchaseAt)
}

func TestBlend(t *testing.T) {
	now := time.Now()
	rec := NewRecord("prod-1", "sup-1", "br-1", nil, "L001",
		dec("10"), dec("4.00"), dec("0.25"), now)

	later := now.Add(time.Hour)
	Blend(rec, dec("10"), dec("6.00"), dec("0.25"), later)

	// (4.00 + 6.00) / 2 = 5.00, sin ponderar por cantidad.
	assert.True(t, rec.UnitCost.Equal(dec("5.00")), "costo %s", rec.UnitCost)
	assert.True(t, rec.UnitPrice.Equal(dec("6.25")), "precio %s", rec.UnitPrice)
	assert.True(t, rec.QuantityOnHand.Equal(dec("20")))
	assert.Equal(t, later, rec.LastPurchaseAt)
}

func TestBlend_NoPonderaPorCantidad(t *testing.T) {
	now := time.Now()
	rec := NewRecord("prod-1", "sup-1", "br-1", nil, "L001",
		dec("1000"), dec("4.00"), dec("0.25"), now)

	// Una unidad cara mueve el costo igual que mil: promedio simple.
	Blend(rec, dec("1"), dec("10.00"), dec("0.25"), now)
	assert.True(t, rec.UnitCost.Equal(dec("7.00")), "costo %s", rec.UnitCost)
}

func TestDeduct(t *testing.T) {
	now := time.Now()
	rec := NewRecord("prod-1", "sup-1", "br-1", nil, "L001",
		dec("10"), dec("4.00"), dec("0.25"), now)

	require.NoError(t, Deduct(rec, dec("4")))
	assert.True(t, rec.QuantityOnHand.Equal(dec("6")))

	// Exactamente lo disponible: válido, deja el stock en cero.
	require.NoError(t, Deduct(rec, dec("6")))
	assert.True(t, rec.QuantityOnHand.IsZero())

	err := Deduct(rec, dec("1"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.True(t, rec.QuantityOnHand.IsZero(), "el stock no cambia si el descuento falla")
}

func TestDeduct_CostoNoCambia(t *testing.T) {
	now := time.Now()
	rec := NewRecord("prod-1", "sup-1", "br-1", nil, "L001",
		dec("10"), dec("4.00"), dec("0.25"), now)

	require.NoError(t, Deduct(rec, dec("5")))
	assert.True(t, rec.UnitCost.Equal(dec("4.00")))
	assert.True(t, rec.UnitPrice.Equal(dec("5.00")))
}
