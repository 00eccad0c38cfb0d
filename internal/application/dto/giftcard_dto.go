package dto

import "github.com/shopspring/decimal"

// IssueGiftCardRequest body para POST /api/giftcards.
type IssueGiftCardRequest struct {
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
	ExpiresAt string          `json:"expires_at"` // RFC 3339
}

// RedeemGiftCardRequest body para POST /api/giftcards/redeem/:code.
type RedeemGiftCardRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UpdateGiftCardRequest body para PUT /api/giftcards/:id.
type UpdateGiftCardRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	ExpiresAt string          `json:"expires_at"`
	State     string          `json:"state,omitempty"` // solo etiquetas reconocidas
}

// GiftCardResponse tarjeta en respuestas.
type GiftCardResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IssuedAt      string          `json:"issued_at"`
	ExpiresAt     string          `json:"expires_at"`
	State         string          `json:"state"`
	CreatedBy     string          `json:"created_by"`
	ModifiedBy    *string         `json:"modified_by,omitempty"`
}

// GiftCardBalanceResponse proyección ligera para consulta de saldo.
type GiftCardBalanceResponse struct {
	Code      string          `json:"code"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	State     string          `json:"state"`
	ExpiresAt string          `json:"expires_at"`
}
