package dto

import "github.com/shopspring/decimal"

// StockRecordResponse proyección de un registro de stock.
type StockRecordResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SupplierID     string          `json:"supplier_id"`
	BranchID       string          `json:"branch_id"`
	AltCode        *string         `json:"alt_code,omitempty"`
	Lot            string          `json:"lot"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LastPurchaseAt string          `json:"last_purchase_at"`
	Active         bool            `json:"active"`
}

// MovementResponse entrada de la bitácora de stock.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	BranchID  string          `json:"branch_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Date      string          `json:"date"`
	Note      string          `json:"note,omitempty"`
}
