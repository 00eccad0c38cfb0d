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

var _ repository.PriceRuleRepository = (*PriceRuleRepo)(nil)

const priceRuleColumns = `id, client_type, percentage, is_promotion, starts_at, ends_at, active`

// PriceRuleRepo implementación de reglas de precio sobre PostgreSQL.
type PriceRuleRepo struct {
	q Querier
}

// NewPriceRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRuleRepository(q Querier) *PriceRuleRepo {
	return &PriceRuleRepo{q: q}
}

func scanPriceRule(row pgx.Row) (*entity.PriceRule, error) {
	var p entity.PriceRule
	err := row.Scan(&p.ID, &p.ClientType, &p.Percentage, &p.IsPromotion,
		&p.StartsAt, &p.EndsAt, &p.Active)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene una regla por ID.
func (r *PriceRuleRepo) GetByID(id string) (*entity.PriceRule, error) {
	query := `SELECT ` + priceRuleColumns + ` FROM price_rules WHERE id = $1`
	p, err := scanPriceRule(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get price rule: %w", err)
	}
	return p, nil
}

// GetActiveByClientType obtiene la regla activa más reciente para un tipo de cliente.
func (r *PriceRuleRepo) GetActiveByClientType(clientType string) (*entity.PriceRule, error) {
	query := `
		SELECT ` + priceRuleColumns + `
		FROM price_rules
		WHERE client_type = $1 AND active = true
		ORDER BY starts_at DESC NULLS LAST
		LIMIT 1`
	p, err := scanPriceRule(r.q.QueryRow(context.Background(), query, clientType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get price rule by client type: %w", err)
	}
	return p, nil
}

// Create inserta una regla de precio.
func (r *PriceRuleRepo) Create(rule *entity.PriceRule) error {
	query := `
		INSERT INTO price_rules (` + priceRuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.ClientType, rule.Percentage, rule.IsPromotion,
		rule.StartsAt, rule.EndsAt, rule.Active,
	)
	if err != nil {
		return fmt.Errorf("create price rule: %w", err)
	}
	return nil
}

// Update actualiza una regla de precio.
func (r *PriceRuleRepo) Update(rule *entity.PriceRule) error {
	query := `
		UPDATE price_rules
		SET client_type = $2, percentage = $3, is_promotion = $4,
			starts_at = $5, ends_at = $6, active = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.ClientType, rule.Percentage, rule.IsPromotion,
		rule.StartsAt, rule.EndsAt, rule.Active,
	)
	if err != nil {
		return fmt.Errorf("update price rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve reglas paginadas.
func (r *PriceRuleRepo) List(limit, offset int) ([]*entity.PriceRule, error) {
	query := `SELECT ` + priceRuleColumns + ` FROM price_rules ORDER BY client_type LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceRule
	for rows.Next() {
		var p entity.PriceRule
		if err := rows.Scan(&p.ID, &p.ClientType, &p.Percentage, &p.IsPromotion,
			&p.StartsAt, &p.EndsAt, &p.Active); err != nil {
			return nil, fmt.Errorf("scan price rule: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
