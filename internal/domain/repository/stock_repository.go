package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// StockRepository puerto de persistencia del libro de stock.
// Los métodos *ForUpdate deben ejecutarse dentro de una transacción y bloquear
// la fila (SELECT FOR UPDATE) hasta el commit: ninguna venta puede actuar sobre
// una cantidad que otra transacción está invalidando.
type StockRepository interface {
	// FindForUpdate busca por clave lógica; AltCode null empata con null.
	// Devuelve nil (sin error) si no existe el registro.
	FindForUpdate(key entity.StockKey) (*entity.StockRecord, error)
	// FindForSaleForUpdate busca el registro activo de (producto, sucursal)
	// para descuento por venta. Devuelve nil si no existe.
	FindForSaleForUpdate(productID, branchID string) (*entity.StockRecord, error)
	Create(rec *entity.StockRecord) error
	Update(rec *entity.StockRecord) error
	GetByID(id string) (*entity.StockRecord, error)
	List(branchID, productID string, limit, offset int) ([]*entity.StockRecord, error)
	SetActive(id string, active bool) error
}
