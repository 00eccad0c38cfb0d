package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// NewRecord crea un registro de stock a partir de la primera compra de la
// combinación (producto, proveedor, sucursal, código alterno).
func NewRecord(productID, supplierID, branchID string, altCode *string, lot string, quantity, unitCost, margin decimal.Decimal, now time.Time) *entity.StockRecord {
	return &entity.StockRecord{
		ProductID:      productID,
		SupplierID:     supplierID,
		BranchID:       branchID,
		AltCode:        altCode,
		Lot:            lot,
		QuantityOnHand: quantity,
		UnitCost:       unitCost,
		UnitPrice:      salePrice(unitCost, margin),
		LastPurchaseAt: now,
		Active:         true,
	}
}

// Blend aplica una compra sobre un registro existente: suma cantidad y mezcla
// el costo como promedio aritmético del costo anterior y el entrante (no
// ponderado por cantidad; se conserva así por compatibilidad con el historial
// de costos existente). El precio de venta se deriva del costo mezclado.
func Blend(rec *entity.StockRecord, quantityDelta, incomingUnitCost, margin decimal.Decimal, now time.Time) {
	rec.UnitCost = rec.UnitCost.Add(incomingUnitCost).Div(decimal.NewFromInt(2))
	rec.UnitPrice = salePrice(rec.UnitCost, margin)
	rec.QuantityOnHand = rec.QuantityOnHand.Add(quantityDelta)
	rec.LastPurchaseAt = now
}

// Deduct descuenta una venta. La cantidad resultante nunca puede ser negativa;
// el chequeo debe hacerse sobre la fila bloqueada dentro de la misma transacción
// que el decremento.
func Deduct(rec *entity.StockRecord, quantity decimal.Decimal) error {
	if quantity.GreaterThan(rec.QuantityOnHand) {
		return domain.ErrInsufficientStock
	}
	rec.QuantityOnHand = rec.QuantityOnHand.Sub(quantity)
	return nil
}

// salePrice deriva el precio de venta: costo + costo*margen.
func salePrice(unitCost, margin decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(one.Add(margin))
}
