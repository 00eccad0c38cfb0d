package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, product_id, supplier_id, branch_id, alt_code, lot,
	quantity_on_hand, unit_cost, unit_price, last_purchase_at, active`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(
		&s.ID, &s.ProductID, &s.SupplierID, &s.BranchID, &s.AltCode, &s.Lot,
		&s.QuantityOnHand, &s.UnitCost, &s.UnitPrice, &s.LastPurchaseAt, &s.Active,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindForUpdate busca por clave lógica y bloquea la fila (SELECT FOR UPDATE).
// alt_code NULL empata con NULL vía IS NOT DISTINCT FROM. Devuelve nil si no existe.
func (r *StockRepo) FindForUpdate(key entity.StockKey) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE product_id = $1 AND supplier_id = $2 AND branch_id = $3
		  AND alt_code IS NOT DISTINCT FROM $4
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query,
		key.ProductID, key.SupplierID, key.BranchID, key.AltCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock for update: %w", err)
	}
	return s, nil
}

// FindForSaleForUpdate busca el registro activo de (producto, sucursal) para
// descuento por venta, bloqueando la fila. Devuelve nil si no existe.
func (r *StockRepo) FindForSaleForUpdate(productID, branchID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE product_id = $1 AND branch_id = $2 AND active = true
		ORDER BY last_purchase_at DESC
		LIMIT 1
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, productID, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock for sale: %w", err)
	}
	return s, nil
}

// Create inserta un registro de stock nuevo.
func (r *StockRepo) Create(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, supplier_id, branch_id, alt_code, lot,
			quantity_on_hand, unit_cost, unit_price, last_purchase_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.SupplierID, rec.BranchID, rec.AltCode, rec.Lot,
		rec.QuantityOnHand, rec.UnitCost, rec.UnitPrice, rec.LastPurchaseAt, rec.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe un registro de stock para esa combinación")
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// Update persiste cantidad, costos y fecha de última compra.
func (r *StockRepo) Update(rec *entity.StockRecord) error {
	query := `
		UPDATE stock_records
		SET quantity_on_hand = $2, unit_cost = $3, unit_price = $4,
			last_purchase_at = $5, lot = $6, active = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.QuantityOnHand, rec.UnitCost, rec.UnitPrice,
		rec.LastPurchaseAt, rec.Lot, rec.Active,
	)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un registro de stock por ID.
func (r *StockRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return s, nil
}

// List devuelve registros filtrados por sucursal y/o producto (vacío = sin filtro).
func (r *StockRepo) List(branchID, productID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE 1=1`
	args := []any{}
	pos := 1
	if branchID != "" {
		query += fmt.Sprintf(" AND branch_id = $%d", pos)
		args = append(args, branchID)
		pos++
	}
	if productID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY last_purchase_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.SupplierID, &s.BranchID, &s.AltCode, &s.Lot,
			&s.QuantityOnHand, &s.UnitCost, &s.UnitPrice, &s.LastPurchaseAt, &s.Active); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SetActive activa o desactiva un registro (borrado lógico).
func (r *StockRepo) SetActive(id string, active bool) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE stock_records SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set stock active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
