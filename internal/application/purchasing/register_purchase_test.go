package purchasing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/pricing"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

// --- fakes en memoria ---

type memStockRepo struct {
	records []*entity.StockRecord
}

func sameAltCode(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memStockRepo) FindForUpdate(key entity.StockKey) (*entity.StockRecord, error) {
	for _, r := range m.records {
		if r.ProductID == key.ProductID && r.SupplierID == key.SupplierID &&
			r.BranchID == key.BranchID && sameAltCode(r.AltCode, key.AltCode) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStockRepo) FindForSaleForUpdate(productID, branchID string) (*entity.StockRecord, error) {
	for _, r := range m.records {
		if r.ProductID == productID && r.BranchID == branchID && r.Active {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStockRepo) Create(rec *entity.StockRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memStockRepo) Update(rec *entity.StockRecord) error { return nil }

func (m *memStockRepo) GetByID(id string) (*entity.StockRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStockRepo) List(branchID, productID string, limit, offset int) ([]*entity.StockRecord, error) {
	return m.records, nil
}

func (m *memStockRepo) SetActive(id string, active bool) error { return nil }

type memMovementRepo struct {
	movements []*entity.Movement
}

func (m *memMovementRepo) Create(mov *entity.Movement) error {
	m.movements = append(m.movements, mov)
	return nil
}

func (m *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	return m.movements, nil
}

func (m *memMovementRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Movement, error) {
	return m.movements, nil
}

type memPurchaseRepo struct {
	purchases []*entity.Purchase
}

func (m *memPurchaseRepo) Create(p *entity.Purchase) error {
	m.purchases = append(m.purchases, p)
	return nil
}

func (m *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	for _, p := range m.purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPurchaseRepo) List(branchID string, limit, offset int) ([]*entity.Purchase, error) {
	return m.purchases, nil
}

type memCatalog struct{}

func (memCatalog) GetByID(id string) (*entity.Product, error) {
	return &entity.Product{ID: id, Active: true}, nil
}

type memBranches struct{}

func (memBranches) GetByID(id string) (*entity.Branch, error) {
	return &entity.Branch{ID: id}, nil
}

type memPresentations struct {
	byID map[string]*entity.Presentation
}

func (m memPresentations) GetByID(id string) (*entity.Presentation, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type memTxRunner struct {
	stock     *memStockRepo
	movements *memMovementRepo
	purchases *memPurchaseRepo
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	stock repository.StockRepository,
	movements repository.MovementRepository,
	purchases repository.PurchaseRepository,
) error) error {
	return fn(t.stock, t.movements, t.purchases)
}

type emptyRuleRepo struct{}

func (emptyRuleRepo) GetByID(id string) (*entity.PriceRule, error) { return nil, domain.ErrNotFound }
func (emptyRuleRepo) GetActiveByClientType(ct string) (*entity.PriceRule, error) {
	return nil, domain.ErrNotFound
}
func (emptyRuleRepo) Create(rule *entity.PriceRule) error                 { return nil }
func (emptyRuleRepo) Update(rule *entity.PriceRule) error                 { return nil }
func (emptyRuleRepo) List(limit, offset int) ([]*entity.PriceRule, error) { return nil, nil }

func newTestUseCase(stockRepo *memStockRepo, pres memPresentations) (*UseCase, *memTxRunner) {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	tx := &memTxRunner{stock: stockRepo, movements: &memMovementRepo{}, purchases: &memPurchaseRepo{}}
	resolver := pricing.NewResolver(emptyRuleRepo{}, decimal.NewFromFloat(0.25), log)
	uc := NewUseCase(tx, memCatalog{}, memBranches{}, pres, tx.purchases, resolver,
		decimal.NewFromFloat(0.12), log)
	return uc, tx
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// --- tests ---

func TestRegister_PrimeraCompra_CreaRegistro(t *testing.T) {
	stockRepo := &memStockRepo{}
	uc, tx := newTestUseCase(stockRepo, memPresentations{})

	req := &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-001",
		SupplierID:    "sup-1",
		BranchID:      "br-1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", Quantity: dec("10"), PurchasePrice: dec("4.00")},
		},
	}

	resp, err := uc.Register(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, stockRepo.records, 1)
	rec := stockRepo.records[0]
	assert.True(t, rec.QuantityOnHand.Equal(dec("10")))
	// Primera compra: el costo entra directo, sin mezclar con cero.
	assert.True(t, rec.UnitCost.Equal(dec("4.00")), "costo %s", rec.UnitCost)
	assert.True(t, rec.UnitPrice.Equal(dec("5.00")), "precio %s", rec.UnitPrice)
	assert.True(t, rec.Active)
	assert.NotEmpty(t, rec.Lot)

	require.Len(t, tx.movements.movements, 1)
	mov := tx.movements.movements[0]
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.True(t, mov.Quantity.Equal(dec("10")))

	require.Len(t, tx.purchases.purchases, 1)
	p := tx.purchases.purchases[0]
	assert.True(t, p.TotalAmount.Equal(dec("40.00")))
	require.Len(t, p.Lines, 1)
	assert.True(t, p.Lines[0].SalePrice.Equal(dec("5.00")))
}

func TestRegister_CompraSobreExistente_MezclaCosto(t *testing.T) {
	altNil := (*string)(nil)
	stockRepo := &memStockRepo{records: []*entity.StockRecord{{
		ID: "st-1", ProductID: "prod-1", SupplierID: "sup-1", BranchID: "br-1",
		AltCode: altNil, Lot: "L001", QuantityOnHand: dec("10"),
		UnitCost: dec("4.00"), UnitPrice: dec("5.00"), Active: true,
	}}}
	uc, _ := newTestUseCase(stockRepo, memPresentations{})

	req := &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-002",
		SupplierID:    "sup-1",
		BranchID:      "br-1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", Quantity: dec("10"), PurchasePrice: dec("6.00")},
		},
	}

	_, err := uc.Register(context.Background(), req, "user-1")
	require.NoError(t, err)

	rec := stockRepo.records[0]
	assert.True(t, rec.QuantityOnHand.Equal(dec("20")))
	// Mezcla: promedio aritmético (4.00 + 6.00) / 2 = 5.00.
	assert.True(t, rec.UnitCost.Equal(dec("5.00")), "costo %s", rec.UnitCost)
	assert.True(t, rec.UnitPrice.Equal(dec("6.25")), "precio %s", rec.UnitPrice)
}

func TestRegister_AltCodeDistinto_CreaOtroRegistro(t *testing.T) {
	stockRepo := &memStockRepo{}
	uc, _ := newTestUseCase(stockRepo, memPresentations{})

	alt := "ALT-9"
	req := &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-003",
		SupplierID:    "sup-1",
		BranchID:      "br-1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", Quantity: dec("5"), PurchasePrice: dec("4.00")},
			{ProductID: "prod-1", AltCode: &alt, Quantity: dec("5"), PurchasePrice: dec("4.00")},
		},
	}

	_, err := uc.Register(context.Background(), req, "user-1")
	require.NoError(t, err)
	assert.Len(t, stockRepo.records, 2)
}

func TestRegister_ConPresentacion_ConvierteAUnidadBase(t *testing.T) {
	stockRepo := &memStockRepo{}
	pres := memPresentations{byID: map[string]*entity.Presentation{
		"caja12": {ID: "caja12", ProductID: "prod-1", ConversionFactor: dec("12"), Active: true},
	}}
	uc, _ := newTestUseCase(stockRepo, pres)

	presID := "caja12"
	req := &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-004",
		SupplierID:    "sup-1",
		BranchID:      "br-1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", PresentationID: &presID, Quantity: dec("2"), PurchasePrice: dec("24.00")},
		},
	}

	_, err := uc.Register(context.Background(), req, "user-1")
	require.NoError(t, err)

	rec := stockRepo.records[0]
	// 2 cajas de 12 = 24 unidades base a 2.00 de costo unitario.
	assert.True(t, rec.QuantityOnHand.Equal(dec("24")))
	assert.True(t, rec.UnitCost.Equal(dec("2.00")), "costo %s", rec.UnitCost)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newTestUseCase(&memStockRepo{}, memPresentations{})
	ctx := context.Background()

	_, err := uc.Register(ctx, &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-1", SupplierID: "s", BranchID: "b",
	}, "u")
	assert.Equal(t, domain.ErrEmptyPurchase, err)

	_, err = uc.Register(ctx, &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-1", SupplierID: "s",
		Lines: []dto.PurchaseLineRequest{{ProductID: "p", Quantity: dec("1"), PurchasePrice: dec("1")}},
	}, "u")
	assert.Equal(t, domain.ErrMissingBranch, err)

	_, err = uc.Register(ctx, &dto.RegisterPurchaseRequest{
		InvoiceNumber: "F-1", SupplierID: "s", BranchID: "b",
		Lines: []dto.PurchaseLineRequest{{ProductID: "p", Quantity: dec("0"), PurchasePrice: dec("1")}},
	}, "u")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
