package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

type fakeRuleRepo struct {
	byID         map[string]*entity.PriceRule
	byClientType map[string]*entity.PriceRule
}

func (f *fakeRuleRepo) GetByID(id string) (*entity.PriceRule, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRuleRepo) GetActiveByClientType(ct string) (*entity.PriceRule, error) {
	if r, ok := f.byClientType[ct]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRuleRepo) Create(rule *entity.PriceRule) error { return nil }
func (f *fakeRuleRepo) Update(rule *entity.PriceRule) error { return nil }
func (f *fakeRuleRepo) List(limit, offset int) ([]*entity.PriceRule, error) {
	return nil, nil
}

func newTestResolver(repo *fakeRuleRepo) *Resolver {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return NewResolver(repo, decimal.NewFromFloat(0.25), log)
}

func strPtr(s string) *string { return &s }

func TestResolveMargin_SinRegla_UsaDefault(t *testing.T) {
	r := newTestResolver(&fakeRuleRepo{})
	now := time.Now()

	m := r.ResolveMargin(context.Background(), nil, now)
	assert.True(t, m.Equal(decimal.NewFromFloat(0.25)))

	m = r.ResolveMargin(context.Background(), strPtr("no-existe"), now)
	assert.True(t, m.Equal(decimal.NewFromFloat(0.25)))
}

func TestResolveMargin_ReglaValida(t *testing.T) {
	repo := &fakeRuleRepo{byID: map[string]*entity.PriceRule{
		"r1": {ID: "r1", ClientType: "Mayorista", Percentage: decimal.NewFromInt(40), Active: true},
	}}
	r := newTestResolver(repo)

	m := r.ResolveMargin(context.Background(), strPtr("r1"), time.Now())
	assert.True(t, m.Equal(decimal.NewFromFloat(0.40)), "esperado 0.40, obtenido %s", m)
}

func TestResolveMargin_ReglaInactiva_UsaDefault(t *testing.T) {
	repo := &fakeRuleRepo{byID: map[string]*entity.PriceRule{
		"r1": {ID: "r1", ClientType: "Mayorista", Percentage: decimal.NewFromInt(40), Active: false},
	}}
	r := newTestResolver(repo)

	m := r.ResolveMargin(context.Background(), strPtr("r1"), time.Now())
	assert.True(t, m.Equal(decimal.NewFromFloat(0.25)))
}

func TestResolveMargin_PorcentajeFueraDeRango_UsaDefault(t *testing.T) {
	repo := &fakeRuleRepo{byID: map[string]*entity.PriceRule{
		"r1": {ID: "r1", ClientType: "Mayorista", Percentage: decimal.NewFromInt(5000), Active: true},
	}}
	r := newTestResolver(repo)

	m := r.ResolveMargin(context.Background(), strPtr("r1"), time.Now())
	assert.True(t, m.Equal(decimal.NewFromFloat(0.25)))
}

func TestResolveMargin_PromocionFueraDeVentana_UsaDefault(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	ended := now.Add(-24 * time.Hour)
	repo := &fakeRuleRepo{byID: map[string]*entity.PriceRule{
		"promo": {
			ID: "promo", IsPromotion: true, Percentage: decimal.NewFromInt(-15),
			StartsAt: &past, EndsAt: &ended, Active: true,
		},
	}}
	r := newTestResolver(repo)

	m := r.ResolveMargin(context.Background(), strPtr("promo"), now)
	assert.True(t, m.Equal(decimal.NewFromFloat(0.25)))
}

func TestResolveByClientType_Descuento(t *testing.T) {
	repo := &fakeRuleRepo{byClientType: map[string]*entity.PriceRule{
		"Premium": {ID: "r2", ClientType: "Premium", Percentage: decimal.NewFromInt(-10), Active: true},
	}}
	r := newTestResolver(repo)

	m := r.ResolveByClientType(context.Background(), "Premium", time.Now())
	assert.True(t, m.Equal(decimal.NewFromFloat(-0.10)))
}

func TestValidateRule(t *testing.T) {
	err := ValidateRule(&entity.PriceRule{ClientType: "", IsPromotion: false, Percentage: decimal.NewFromInt(10)})
	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	err = ValidateRule(&entity.PriceRule{ClientType: "Normal", Percentage: decimal.NewFromInt(-200)})
	assert.Error(t, err)

	starts := time.Now()
	ends := starts.Add(-time.Hour)
	err = ValidateRule(&entity.PriceRule{ClientType: "Normal", Percentage: decimal.NewFromInt(10), StartsAt: &starts, EndsAt: &ends})
	assert.Error(t, err)

	err = ValidateRule(&entity.PriceRule{ClientType: "Normal", Percentage: decimal.NewFromInt(10)})
	assert.NoError(t, err)
}
