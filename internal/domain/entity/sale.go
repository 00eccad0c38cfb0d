package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una venta. Subtotal/VAT/Total se recalculan siempre
// desde las líneas; nunca se confía en los totales del caller. Una venta solo
// existe junto con sus descuentos de stock y movimientos (misma transacción).
type Sale struct {
	ID            string
	InvoiceNumber string
	ClientID      string
	BranchID      string
	UserID        string
	CashierName   string
	VATRate       decimal.Decimal
	Subtotal      decimal.Decimal
	VAT           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Notes         string
	Date          time.Time
	CreatedAt     time.Time
	Lines         []*SaleLine
}

// SaleLine es una línea de venta. UnitPrice incluye IVA; Subtotal se calcula
// sobre el precio sin IVA redondeado a 2 decimales.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Lot       *string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
