package purchasing

import (
	"context"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. Los repositorios que recibe
// fn operan sobre la misma transacción; si fn devuelve error se hace rollback
// de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stock repository.StockRepository,
		movements repository.MovementRepository,
		purchases repository.PurchaseRepository,
	) error) error
}
