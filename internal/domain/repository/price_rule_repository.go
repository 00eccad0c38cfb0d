package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// PriceRuleRepository puerto de reglas de precio. El motor solo las lee;
// la administración entra por los endpoints de catálogo.
type PriceRuleRepository interface {
	GetByID(id string) (*entity.PriceRule, error)
	GetActiveByClientType(clientType string) (*entity.PriceRule, error)
	Create(rule *entity.PriceRule) error
	Update(rule *entity.PriceRule) error
	List(limit, offset int) ([]*entity.PriceRule, error)
}
