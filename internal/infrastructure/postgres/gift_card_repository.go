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

var _ repository.GiftCardRepository = (*GiftCardRepo)(nil)

const giftCardColumns = `id, code, initial_amount, balance, currency, issued_at,
	expires_at, state, created_by, created_at, modified_by, modified_at`

// GiftCardRepo implementación de gift cards sobre PostgreSQL (usable con pool o tx).
type GiftCardRepo struct {
	q Querier
}

// NewGiftCardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGiftCardRepository(q Querier) *GiftCardRepo {
	return &GiftCardRepo{q: q}
}

func scanGiftCard(row pgx.Row) (*entity.GiftCard, error) {
	var g entity.GiftCard
	var state string
	err := row.Scan(
		&g.ID, &g.Code, &g.InitialAmount, &g.Balance, &g.Currency, &g.IssuedAt,
		&g.ExpiresAt, &state, &g.CreatedBy, &g.CreatedAt, &g.ModifiedBy, &g.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	g.State = entity.CardState(state)
	return &g, nil
}

// Create inserta una tarjeta nueva; el código es único.
func (r *GiftCardRepo) Create(card *entity.GiftCard) error {
	query := `
		INSERT INTO gift_cards (` + giftCardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		card.ID, card.Code, card.InitialAmount, card.Balance, card.Currency,
		card.IssuedAt, card.ExpiresAt, string(card.State), card.CreatedBy,
		card.CreatedAt, card.ModifiedBy, card.ModifiedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe una tarjeta con el código " + card.Code)
		}
		return fmt.Errorf("create gift card: %w", err)
	}
	return nil
}

// Update persiste saldo, estado y auditoría de una tarjeta.
func (r *GiftCardRepo) Update(card *entity.GiftCard) error {
	query := `
		UPDATE gift_cards
		SET initial_amount = $2, balance = $3, currency = $4, expires_at = $5,
			state = $6, modified_by = $7, modified_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		card.ID, card.InitialAmount, card.Balance, card.Currency, card.ExpiresAt,
		string(card.State), card.ModifiedBy, card.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("update gift card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una tarjeta por ID.
func (r *GiftCardRepo) GetByID(id string) (*entity.GiftCard, error) {
	query := `SELECT ` + giftCardColumns + ` FROM gift_cards WHERE id = $1`
	g, err := scanGiftCard(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get gift card: %w", err)
	}
	return g, nil
}

// GetByCode obtiene una tarjeta por código.
func (r *GiftCardRepo) GetByCode(code string) (*entity.GiftCard, error) {
	query := `SELECT ` + giftCardColumns + ` FROM gift_cards WHERE code = $1`
	g, err := scanGiftCard(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get gift card by code: %w", err)
	}
	return g, nil
}

// GetByCodeForUpdate obtiene una tarjeta por código bloqueando la fila
// (SELECT FOR UPDATE): serializa redenciones concurrentes del mismo código.
func (r *GiftCardRepo) GetByCodeForUpdate(code string) (*entity.GiftCard, error) {
	query := `SELECT ` + giftCardColumns + ` FROM gift_cards WHERE code = $1 FOR UPDATE`
	g, err := scanGiftCard(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get gift card for update: %w", err)
	}
	return g, nil
}

// List devuelve tarjetas paginadas, más recientes primero.
func (r *GiftCardRepo) List(limit, offset int) ([]*entity.GiftCard, error) {
	query := `
		SELECT ` + giftCardColumns + `
		FROM gift_cards ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list gift cards: %w", err)
	}
	defer rows.Close()
	var list []*entity.GiftCard
	for rows.Next() {
		var g entity.GiftCard
		var state string
		if err := rows.Scan(&g.ID, &g.Code, &g.InitialAmount, &g.Balance, &g.Currency,
			&g.IssuedAt, &g.ExpiresAt, &state, &g.CreatedBy, &g.CreatedAt,
			&g.ModifiedBy, &g.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan gift card: %w", err)
		}
		g.State = entity.CardState(state)
		list = append(list, &g)
	}
	return list, rows.Err()
}
