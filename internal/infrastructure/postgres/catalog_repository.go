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

// Adaptadores de solo lectura sobre el catálogo. El CRUD vive en otro servicio;
// aquí solo se valida existencia y se leen factores de conversión.

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.BranchRepository = (*BranchRepo)(nil)
var _ repository.PresentationRepository = (*PresentationRepo)(nil)

// ProductRepo lectura de productos.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT id, sku, name, active, created_at FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// BranchRepo lectura de sucursales.
type BranchRepo struct {
	q Querier
}

func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `SELECT id, name, active FROM branches WHERE id = $1`
	var b entity.Branch
	err := r.q.QueryRow(context.Background(), query, id).Scan(&b.ID, &b.Name, &b.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// PresentationRepo lectura de presentaciones.
type PresentationRepo struct {
	q Querier
}

func NewPresentationRepository(q Querier) *PresentationRepo {
	return &PresentationRepo{q: q}
}

// GetByID obtiene una presentación por ID.
func (r *PresentationRepo) GetByID(id string) (*entity.Presentation, error) {
	query := `SELECT id, product_id, unit_id, kind, conversion_factor, active
		FROM presentations WHERE id = $1`
	var p entity.Presentation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.UnitID, &p.Kind, &p.ConversionFactor, &p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return &p, nil
}
