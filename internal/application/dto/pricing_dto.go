package dto

import "github.com/shopspring/decimal"

// PriceRuleRequest body para crear o actualizar una regla de precio.
type PriceRuleRequest struct {
	ClientType  string          `json:"client_type"`
	Percentage  decimal.Decimal `json:"percentage"` // negativo = descuento
	IsPromotion bool            `json:"is_promotion"`
	StartsAt    *string         `json:"starts_at,omitempty"` // RFC 3339
	EndsAt      *string         `json:"ends_at,omitempty"`
	Active      bool            `json:"active"`
}

// PriceRuleResponse regla de precio en respuestas.
type PriceRuleResponse struct {
	ID          string          `json:"id"`
	ClientType  string          `json:"client_type"`
	Percentage  decimal.Decimal `json:"percentage"`
	IsPromotion bool            `json:"is_promotion"`
	StartsAt    *string         `json:"starts_at,omitempty"`
	EndsAt      *string         `json:"ends_at,omitempty"`
	Active      bool            `json:"active"`
}

// ResolvedMarginResponse porcentaje resuelto para un tipo de cliente o regla.
type ResolvedMarginResponse struct {
	Percentage decimal.Decimal `json:"percentage"`
	Margin     decimal.Decimal `json:"margin"` // fracción (25% -> 0.25)
}
