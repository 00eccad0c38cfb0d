package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypePurchase   = "Purchase"
	MovementTypeSale       = "Sale"
	MovementTypeAdjustment = "Adjustment"
)

// Movement es una entrada de la bitácora de stock: compra positiva, venta negativa.
// Append-only: nunca se actualiza ni se borra una vez escrita.
type Movement struct {
	ID        string
	ProductID string
	BranchID  string
	Quantity  decimal.Decimal // con signo por convención
	UnitPrice decimal.Decimal
	Type      string
	Date      time.Time
	Note      string
}
