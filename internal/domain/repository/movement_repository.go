package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// MovementRepository puerto de la bitácora de stock. Solo inserción y lectura:
// las entradas jamás se actualizan ni se borran.
type MovementRepository interface {
	Create(m *entity.Movement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Movement, error)
}
