package sales

import (
	"context"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. Las filas de stock que fn
// bloquee quedan bloqueadas hasta el commit o rollback.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stock repository.StockRepository,
		movements repository.MovementRepository,
		sales repository.SaleRepository,
	) error) error
}
