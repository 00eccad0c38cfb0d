package giftcard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

// DefaultCurrency moneda asumida cuando la emisión no indica una.
const DefaultCurrency = "GTQ"

// TxRunner ejecuta fn con el repositorio de tarjetas sobre una transacción;
// GetByCodeForUpdate dentro de fn serializa las operaciones sobre una tarjeta.
type TxRunner interface {
	RunGiftCard(ctx context.Context, fn func(cards repository.GiftCardRepository) error) error
}

// UseCase ciclo de vida de gift cards: emisión, redención, anulación y consulta.
type UseCase struct {
	tx    TxRunner
	cards repository.GiftCardRepository
	log   *logger.Logger
}

func NewUseCase(tx TxRunner, cards repository.GiftCardRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, cards: cards, log: log}
}

// Issue emite una tarjeta nueva con saldo igual al monto inicial.
func (uc *UseCase) Issue(ctx context.Context, req *dto.IssueGiftCardRequest, userName string) (*entity.GiftCard, error) {
	if req.Code == "" {
		return nil, domain.Validation("debe especificar el código de la tarjeta")
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("el monto inicial debe ser mayor a cero")
	}
	cur := req.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	if _, err := currency.ParseISO(cur); err != nil {
		return nil, domain.Validation("moneda no reconocida: " + cur)
	}
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, domain.Validation("fecha de expiración inválida, se espera RFC 3339")
	}
	now := time.Now()
	if !expiresAt.After(now) {
		return nil, domain.Validation("la fecha de expiración debe ser futura")
	}

	if existing, err := uc.cards.GetByCode(req.Code); err == nil && existing != nil {
		return nil, domain.Conflict("ya existe una tarjeta con el código " + req.Code)
	} else if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	card := &entity.GiftCard{
		ID:            uuid.New().String(),
		Code:          req.Code,
		InitialAmount: req.Amount,
		Balance:       req.Amount,
		Currency:      cur,
		IssuedAt:      now,
		ExpiresAt:     expiresAt,
		State:         entity.CardActive,
		CreatedBy:     userName,
		CreatedAt:     now,
	}
	if err := uc.cards.Create(card); err != nil {
		return nil, err
	}

	uc.log.Info().Str("card_id", card.ID).Str("code", card.Code).
		Str("amount", card.InitialAmount.String()).Msg("Gift card emitida")
	return card, nil
}

// Redeem descuenta monto del saldo de la tarjeta, con la fila bloqueada.
// Si la tarjeta ya venció, la transición a EXPIRED se persiste aunque la
// redención misma falle: la detección de expiración no se pierde con el error.
func (uc *UseCase) Redeem(ctx context.Context, code string, amount decimal.Decimal, userName string) (*entity.GiftCard, error) {
	var card *entity.GiftCard
	var opErr error

	err := uc.tx.RunGiftCard(ctx, func(cards repository.GiftCardRepository) error {
		var err error
		card, err = cards.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}

		now := time.Now()
		if card.ExpireIfDue(userName, now) {
			if err := cards.Update(card); err != nil {
				return err
			}
			opErr = domain.ErrCardExpired
			return nil // commit: la expiración queda persistida
		}

		if err := card.Redeem(amount, userName, now); err != nil {
			opErr = err
			return nil // sin escrituras pendientes, el commit es inocuo
		}
		return cards.Update(card)
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}

	uc.log.Info().Str("code", code).Str("amount", amount.String()).
		Str("balance", card.Balance.String()).Str("state", string(card.State)).
		Msg("Gift card redimida")
	return card, nil
}

// Void anula una tarjeta de forma terminal.
func (uc *UseCase) Void(ctx context.Context, id string, userName string) (*entity.GiftCard, error) {
	var card *entity.GiftCard
	var opErr error

	err := uc.tx.RunGiftCard(ctx, func(cards repository.GiftCardRepository) error {
		var err error
		card, err = cards.GetByID(id)
		if err != nil {
			return err
		}
		if err := card.Void(userName, time.Now()); err != nil {
			opErr = err
			return nil
		}
		return cards.Update(card)
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}

	uc.log.Info().Str("card_id", id).Msg("Gift card anulada")
	return card, nil
}

// Update modifica monto, moneda, expiración y opcionalmente estado.
func (uc *UseCase) Update(ctx context.Context, id string, req *dto.UpdateGiftCardRequest, userName string) (*entity.GiftCard, error) {
	if _, err := currency.ParseISO(req.Currency); err != nil {
		return nil, domain.Validation("moneda no reconocida: " + req.Currency)
	}
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, domain.Validation("fecha de expiración inválida, se espera RFC 3339")
	}
	var state *entity.CardState
	if req.State != "" {
		s, err := entity.ParseCardState(req.State)
		if err != nil {
			return nil, err
		}
		state = &s
	}

	var card *entity.GiftCard
	var opErr error
	errTx := uc.tx.RunGiftCard(ctx, func(cards repository.GiftCardRepository) error {
		var err error
		card, err = cards.GetByID(id)
		if err != nil {
			return err
		}
		if err := card.Update(req.Amount, req.Currency, expiresAt, state, userName, time.Now()); err != nil {
			opErr = err
			return nil
		}
		return cards.Update(card)
	})
	if errTx != nil {
		return nil, errTx
	}
	if opErr != nil {
		return nil, opErr
	}
	return card, nil
}

// Balance devuelve la proyección de saldo de una tarjeta por código.
// Aplica expiración perezosa con la fila bloqueada, por el mismo camino
// transaccional que Redeem.
func (uc *UseCase) Balance(ctx context.Context, code string) (*entity.GiftCard, error) {
	var card *entity.GiftCard
	err := uc.tx.RunGiftCard(ctx, func(cards repository.GiftCardRepository) error {
		var err error
		card, err = cards.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if card.ExpireIfDue("sistema", time.Now()) {
			return cards.Update(card)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetByID devuelve una tarjeta por identificador.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.GiftCard, error) {
	return uc.cards.GetByID(id)
}

// GetByCode devuelve una tarjeta por código.
func (uc *UseCase) GetByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	return uc.cards.GetByCode(code)
}

// List devuelve tarjetas paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.GiftCard, error) {
	return uc.cards.List(limit, offset)
}
