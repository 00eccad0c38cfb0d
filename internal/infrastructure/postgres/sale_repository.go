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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas. Debe llamarse dentro de la
// misma transacción que los descuentos de stock de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, invoice_number, client_id, branch_id, user_id,
			cashier_name, vat_rate, subtotal, vat, total, payment_method, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.InvoiceNumber, s.ClientID, s.BranchID, s.UserID,
		s.CashierName, s.VATRate, s.Subtotal, s.VAT, s.Total,
		s.PaymentMethod, s.Notes, s.Date, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe una venta con ese número de factura")
		}
		return fmt.Errorf("create sale: %w", err)
	}

	lineQuery := `
		INSERT INTO sale_lines (id, sale_id, product_id, lot, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range s.Lines {
		_, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.SaleID, line.ProductID, line.Lot,
			line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("create sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, invoice_number, client_id, branch_id, user_id, cashier_name,
			vat_rate, subtotal, vat, total, payment_method, notes, date, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.InvoiceNumber, &s.ClientID, &s.BranchID, &s.UserID, &s.CashierName,
		&s.VATRate, &s.Subtotal, &s.VAT, &s.Total, &s.PaymentMethod, &s.Notes,
		&s.Date, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	lines, err := r.linesOf(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

// List devuelve ventas de una sucursal (vacío = todas), más recientes primero.
// Las líneas no se cargan en el listado.
func (r *SaleRepo) List(branchID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, invoice_number, client_id, branch_id, user_id, cashier_name,
			vat_rate, subtotal, vat, total, payment_method, notes, date, created_at
		FROM sales`
	args := []any{}
	pos := 1
	if branchID != "" {
		query += fmt.Sprintf(" WHERE branch_id = $%d", pos)
		args = append(args, branchID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.InvoiceNumber, &s.ClientID, &s.BranchID, &s.UserID,
			&s.CashierName, &s.VATRate, &s.Subtotal, &s.VAT, &s.Total,
			&s.PaymentMethod, &s.Notes, &s.Date, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) linesOf(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, lot, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Lot,
			&l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}
