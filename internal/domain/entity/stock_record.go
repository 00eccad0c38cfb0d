package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el stock de un producto por proveedor, sucursal y lote.
// UnitCost/UnitPrice se derivan siempre de la última mezcla de compra; una venta
// solo descuenta cantidad, nunca toca el costo. El registro no se elimina, se desactiva.
type StockRecord struct {
	ID             string
	ProductID      string
	SupplierID     string
	BranchID       string
	AltCode        *string // código alterno de barra/proveedor; null es parte de la clave lógica
	Lot            string
	QuantityOnHand decimal.Decimal
	UnitCost       decimal.Decimal
	UnitPrice      decimal.Decimal
	LastPurchaseAt time.Time
	Active         bool
}

// Key identifica lógicamente un registro de stock (AltCode null empata con null).
type StockKey struct {
	ProductID  string
	SupplierID string
	BranchID   string
	AltCode    *string
}

// Key devuelve la clave lógica del registro.
func (s *StockRecord) Key() StockKey {
	return StockKey{ProductID: s.ProductID, SupplierID: s.SupplierID, BranchID: s.BranchID, AltCode: s.AltCode}
}
