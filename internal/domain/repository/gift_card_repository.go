package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// GiftCardRepository puerto de persistencia de gift cards.
// GetByCodeForUpdate bloquea la fila de la tarjeta (serialización por código).
type GiftCardRepository interface {
	Create(card *entity.GiftCard) error
	Update(card *entity.GiftCard) error
	GetByID(id string) (*entity.GiftCard, error)
	GetByCode(code string) (*entity.GiftCard, error)
	GetByCodeForUpdate(code string) (*entity.GiftCard, error)
	List(limit, offset int) ([]*entity.GiftCard, error)
}
