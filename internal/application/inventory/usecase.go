package inventory

import (
	"context"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

// UseCase consultas del libro de stock y de la bitácora de movimientos.
type UseCase struct {
	stock     repository.StockRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

func NewUseCase(stock repository.StockRepository, movements repository.MovementRepository, log *logger.Logger) *UseCase {
	return &UseCase{stock: stock, movements: movements, log: log}
}

// List devuelve registros de stock filtrados por sucursal y/o producto.
func (uc *UseCase) List(ctx context.Context, branchID, productID string, limit, offset int) ([]*entity.StockRecord, error) {
	return uc.stock.List(branchID, productID, limit, offset)
}

// GetByID devuelve un registro de stock.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	return uc.stock.GetByID(id)
}

// SetActive activa o desactiva un registro de stock. Los registros nunca se
// eliminan: la historia de costos y movimientos debe sobrevivirlos.
func (uc *UseCase) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := uc.stock.GetByID(id); err != nil {
		return err
	}
	if err := uc.stock.SetActive(id, active); err != nil {
		return err
	}
	uc.log.Info().Str("stock_id", id).Bool("active", active).Msg("Registro de stock actualizado")
	return nil
}

// MovementsByProduct devuelve la bitácora de un producto.
func (uc *UseCase) MovementsByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.Validation("debe especificar el producto")
	}
	return uc.movements.ListByProduct(productID, limit, offset)
}

// MovementsByBranch devuelve la bitácora de una sucursal.
func (uc *UseCase) MovementsByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Movement, error) {
	if branchID == "" {
		return nil, domain.ErrMissingBranch
	}
	return uc.movements.ListByBranch(branchID, limit, offset)
}
