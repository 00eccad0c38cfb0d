package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

// Resolver decide el margen aplicable a una compra o a un tipo de cliente.
// Si no hay regla utilizable devuelve el margen por defecto configurado:
// una regla rota jamás debe frenar el posteo de una compra.
type Resolver struct {
	rules         repository.PriceRuleRepository
	defaultMargin decimal.Decimal
	log           *logger.Logger
}

func NewResolver(rules repository.PriceRuleRepository, defaultMargin decimal.Decimal, log *logger.Logger) *Resolver {
	return &Resolver{rules: rules, defaultMargin: defaultMargin, log: log}
}

// DefaultMargin margen configurado como fracción (0.25 = 25%).
func (r *Resolver) DefaultMargin() decimal.Decimal {
	return r.defaultMargin
}

// ResolveMargin devuelve la fracción de margen para la regla indicada.
// ruleID nil, regla inexistente, inactiva, fuera de ventana o con porcentaje
// fuera de rango caen al margen por defecto.
func (r *Resolver) ResolveMargin(ctx context.Context, ruleID *string, now time.Time) decimal.Decimal {
	if ruleID == nil || *ruleID == "" {
		return r.defaultMargin
	}
	rule, err := r.rules.GetByID(*ruleID)
	if err != nil {
		r.log.Warn().Str("rule_id", *ruleID).Err(err).
			Msg("Regla de precio no disponible, usando margen por defecto")
		return r.defaultMargin
	}
	return r.marginFrom(rule, now, *ruleID)
}

// ResolveByClientType devuelve la fracción de margen vigente para un tipo de
// cliente, o el margen por defecto si no hay regla activa aplicable.
func (r *Resolver) ResolveByClientType(ctx context.Context, clientType string, now time.Time) decimal.Decimal {
	if clientType == "" {
		return r.defaultMargin
	}
	rule, err := r.rules.GetActiveByClientType(clientType)
	if err != nil {
		if domain.KindOf(err) != domain.KindNotFound {
			r.log.Warn().Str("client_type", clientType).Err(err).
				Msg("Error resolviendo regla por tipo de cliente")
		}
		return r.defaultMargin
	}
	return r.marginFrom(rule, now, rule.ID)
}

func (r *Resolver) marginFrom(rule *entity.PriceRule, now time.Time, ruleID string) decimal.Decimal {
	if rule == nil || !rule.Active || !rule.InWindow(now) {
		return r.defaultMargin
	}
	if !rule.PercentageValid() {
		r.log.Warn().Str("rule_id", ruleID).Str("percentage", rule.Percentage.String()).
			Msg("Regla de precio con porcentaje fuera de rango, usando margen por defecto")
		return r.defaultMargin
	}
	return rule.MarginFraction()
}

// ValidateRule valida una regla antes de crearla o actualizarla.
func ValidateRule(rule *entity.PriceRule) error {
	if rule.ClientType == "" && !rule.IsPromotion {
		return domain.Validation("la regla debe tener tipo de cliente o ser promoción")
	}
	if !rule.PercentageValid() {
		return domain.Validation("el porcentaje debe estar entre -100 y 1000")
	}
	if rule.StartsAt != nil && rule.EndsAt != nil && rule.EndsAt.Before(*rule.StartsAt) {
		return domain.Validation("la ventana de vigencia es inválida")
	}
	return nil
}
