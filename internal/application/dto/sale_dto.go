package dto

import "github.com/shopspring/decimal"

// RegisterSaleRequest body para POST /api/sales. Los totales del caller se
// ignoran: el motor los recalcula siempre desde las líneas.
type RegisterSaleRequest struct {
	InvoiceNumber string            `json:"invoice_number,omitempty"` // se genera si va vacío
	ClientID      string            `json:"client_id"`
	BranchID      string            `json:"branch_id"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Lines         []SaleLineRequest `json:"lines"`
}

// SaleLineRequest línea de venta: precio unitario con IVA incluido.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Lot       *string         `json:"lot,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RegisterSaleResponse totales calculados de la venta registrada.
type RegisterSaleResponse struct {
	InvoiceNumber string          `json:"invoice_number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VAT           decimal.Decimal `json:"vat"`
	Total         decimal.Decimal `json:"total"`
}

// SaleResponse venta con líneas para listados.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	ClientID      string             `json:"client_id"`
	BranchID      string             `json:"branch_id"`
	CashierName   string             `json:"cashier_name"`
	Date          string             `json:"date"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	VAT           decimal.Decimal    `json:"vat"`
	Total         decimal.Decimal    `json:"total"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
