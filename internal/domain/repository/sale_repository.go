package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// SaleRepository puerto de persistencia de ventas (cabecera + líneas).
type SaleRepository interface {
	Create(s *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(branchID string, limit, offset int) ([]*entity.Sale, error)
}
