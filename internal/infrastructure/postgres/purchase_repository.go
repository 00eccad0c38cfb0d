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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de compras sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas. Debe llamarse dentro de la
// misma transacción que las escrituras de stock que la compra provocó.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (id, invoice_number, supplier_id, branch_id, user_id,
			price_rule_id, vat_rate, total_amount, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.InvoiceNumber, p.SupplierID, p.BranchID, p.UserID,
		p.PriceRuleID, p.VATRate, p.TotalAmount, p.Notes, p.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe una compra con ese número de factura")
		}
		return fmt.Errorf("create purchase: %w", err)
	}

	lineQuery := `
		INSERT INTO purchase_lines (id, purchase_id, product_id, presentation_id,
			alt_code, lot, quantity, purchase_price, sale_price, subtotal, received_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, line := range p.Lines {
		_, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.PurchaseID, line.ProductID, line.PresentationID,
			line.AltCode, line.Lot, line.Quantity, line.PurchasePrice,
			line.SalePrice, line.Subtotal, line.ReceivedAt, line.Notes,
		)
		if err != nil {
			return fmt.Errorf("create purchase line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus líneas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	ctx := context.Background()
	query := `
		SELECT id, invoice_number, supplier_id, branch_id, user_id,
			price_rule_id, vat_rate, total_amount, notes, date
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.InvoiceNumber, &p.SupplierID, &p.BranchID, &p.UserID,
		&p.PriceRuleID, &p.VATRate, &p.TotalAmount, &p.Notes, &p.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	lines, err := r.linesOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Lines = lines
	return &p, nil
}

// List devuelve compras de una sucursal (vacío = todas), más recientes primero.
// Las líneas no se cargan en el listado.
func (r *PurchaseRepo) List(branchID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, invoice_number, supplier_id, branch_id, user_id,
			price_rule_id, vat_rate, total_amount, notes, date
		FROM purchases`
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
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.InvoiceNumber, &p.SupplierID, &p.BranchID, &p.UserID,
			&p.PriceRuleID, &p.VATRate, &p.TotalAmount, &p.Notes, &p.Date); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PurchaseRepo) linesOf(ctx context.Context, purchaseID string) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT id, purchase_id, product_id, presentation_id, alt_code, lot,
			quantity, purchase_price, sale_price, subtotal, received_at, notes
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.PresentationID,
			&l.AltCode, &l.Lot, &l.Quantity, &l.PurchasePrice, &l.SalePrice,
			&l.Subtotal, &l.ReceivedAt, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}
