package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// PurchaseRepository puerto de persistencia de compras (cabecera + líneas).
// Las líneas pertenecen a la cabecera: no la sobreviven.
type PurchaseRepository interface {
	Create(p *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	List(branchID string, limit, offset int) ([]*entity.Purchase, error)
}
