package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRule es un porcentaje de margen o descuento asociado a un tipo de cliente
// o a una promoción con ventana de vigencia. Negativo representa descuento.
type PriceRule struct {
	ID          string
	ClientType  string // Normal, Mayorista, Premium, etc.
	Percentage  decimal.Decimal
	IsPromotion bool
	StartsAt    *time.Time
	EndsAt      *time.Time
	Active      bool
}

// Límites válidos del porcentaje de una regla.
var (
	minRulePercentage = decimal.NewFromInt(-100)
	maxRulePercentage = decimal.NewFromInt(1000)
)

// PercentageValid indica si el porcentaje está dentro de [-100, 1000].
func (r *PriceRule) PercentageValid() bool {
	return r.Percentage.GreaterThanOrEqual(minRulePercentage) &&
		r.Percentage.LessThanOrEqual(maxRulePercentage)
}

// InWindow indica si la regla está vigente en el instante dado.
// Sin ventana definida la regla aplica siempre que esté activa.
func (r *PriceRule) InWindow(now time.Time) bool {
	if r.StartsAt != nil && now.Before(*r.StartsAt) {
		return false
	}
	if r.EndsAt != nil && now.After(*r.EndsAt) {
		return false
	}
	return true
}

// MarginFraction convierte el porcentaje en fracción (25 -> 0.25).
func (r *PriceRule) MarginFraction() decimal.Decimal {
	return r.Percentage.Div(decimal.NewFromInt(100))
}
