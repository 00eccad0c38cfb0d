package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/giftcard"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/purchasing"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/sales"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
)

// Ensure TxRunner implements the transaction ports of each use case.
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ giftcard.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para el posteo de compras, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movRepo := NewMovementRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)

	if err := fn(stockRepo, movRepo, purchaseRepo); err != nil {
		return txError(err)
	}
	return commitTx(ctx, tx)
}

// RunSale inicia una transacción para el registro de ventas con descuento de stock.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movRepo := NewMovementRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(stockRepo, movRepo, saleRepo); err != nil {
		return txError(err)
	}
	return commitTx(ctx, tx)
}

// RunGiftCard inicia una transacción para operaciones sobre gift cards
// (la fila de la tarjeta se bloquea con GetByCodeForUpdate dentro de fn).
func (r *TxRunner) RunGiftCard(ctx context.Context, fn func(
	cards repository.GiftCardRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewGiftCardRepository(tx)); err != nil {
		return txError(err)
	}
	return commitTx(ctx, tx)
}

// txError traduce los abortos por concurrencia de Postgres a ErrConcurrency;
// el llamador puede reintentar la operación completa.
func txError(err error) error {
	if isSerializationFailure(err) {
		return domain.ErrConcurrency
	}
	return err
}

func commitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return txError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
