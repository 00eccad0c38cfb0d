package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es la cabecera de una compra a proveedor. Inmutable después del posteo;
// TotalAmount siempre es la suma de los subtotales de sus líneas.
type Purchase struct {
	ID            string
	InvoiceNumber string
	SupplierID    string
	BranchID      string
	UserID        string
	PriceRuleID   *string
	VATRate       decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
	Date          time.Time
	Lines         []*PurchaseLine
}

// PurchaseLine es una línea de compra. SalePrice es el precio de venta calculado
// sobre el precio de compra de la línea; puede divergir del precio mezclado del
// stock (ambos cálculos se conservan como campos distintos).
type PurchaseLine struct {
	ID             string
	PurchaseID     string
	ProductID      string
	PresentationID *string
	AltCode        *string
	Lot            string
	Quantity       decimal.Decimal
	PurchasePrice  decimal.Decimal
	SalePrice      decimal.Decimal
	Subtotal       decimal.Decimal
	ReceivedAt     time.Time
	Notes          string
}
