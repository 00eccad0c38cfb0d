package dto

import "github.com/shopspring/decimal"

// RegisterPurchaseRequest body para POST /api/purchases.
type RegisterPurchaseRequest struct {
	InvoiceNumber string                `json:"invoice_number"`
	SupplierID    string                `json:"supplier_id"`
	BranchID      string                `json:"branch_id"`
	PriceRuleID   *string               `json:"price_rule_id,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Lines         []PurchaseLineRequest `json:"lines"`
}

// PurchaseLineRequest línea de compra entrante.
type PurchaseLineRequest struct {
	ProductID      string          `json:"product_id"`
	PresentationID *string         `json:"presentation_id,omitempty"`
	AltCode        *string         `json:"alt_code,omitempty"`
	Lot            string          `json:"lot,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	Notes          string          `json:"notes,omitempty"`
}

// RegisterPurchaseResponse respuesta del posteo de una compra.
type RegisterPurchaseResponse struct {
	PurchaseID string `json:"purchase_id"`
	BranchID   string `json:"branch_id"`
}

// PurchaseResponse compra con líneas para listados.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	InvoiceNumber string                 `json:"invoice_number"`
	SupplierID    string                 `json:"supplier_id"`
	BranchID      string                 `json:"branch_id"`
	Date          string                 `json:"date"`
	VATRate       decimal.Decimal        `json:"vat_rate"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []PurchaseLineResponse `json:"lines"`
}

// PurchaseLineResponse línea de compra en respuestas.
type PurchaseLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Lot           string          `json:"lot"`
	AltCode       *string         `json:"alt_code,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}
