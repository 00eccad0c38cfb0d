package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/pricing"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/stock"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

// UseCase postea compras contra el libro de stock. Todo el posteo de una
// compra (cabecera, líneas, mezcla de costos, movimientos) ocurre en una sola
// transacción: o entra completa o no entra.
type UseCase struct {
	tx            TxRunner
	products      repository.ProductRepository
	branches      repository.BranchRepository
	presentations repository.PresentationRepository
	purchases     repository.PurchaseRepository
	resolver      *pricing.Resolver
	vatRate       decimal.Decimal
	log           *logger.Logger
}

func NewUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	branches repository.BranchRepository,
	presentations repository.PresentationRepository,
	purchases repository.PurchaseRepository,
	resolver *pricing.Resolver,
	vatRate decimal.Decimal,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:            tx,
		products:      products,
		branches:      branches,
		presentations: presentations,
		purchases:     purchases,
		resolver:      resolver,
		vatRate:       vatRate,
		log:           log,
	}
}

// Register postea una compra: valida, resuelve margen, y por cada línea mezcla
// el costo en el registro de stock correspondiente (o lo crea) y registra el
// movimiento de entrada.
func (uc *UseCase) Register(ctx context.Context, req *dto.RegisterPurchaseRequest, userID string) (*dto.RegisterPurchaseResponse, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}

	now := time.Now()

	if _, err := uc.branches.GetByID(req.BranchID); err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NotFoundf("la sucursal indicada no existe")
		}
		return nil, err
	}

	// Factores de conversión y existencia de productos se resuelven antes de
	// abrir la transacción; son lecturas de catálogo, no necesitan el lock.
	factors := make([]decimal.Decimal, len(req.Lines))
	for i, line := range req.Lines {
		if _, err := uc.products.GetByID(line.ProductID); err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, domain.NotFoundf("el producto " + line.ProductID + " no existe")
			}
			return nil, err
		}
		factors[i] = decimal.NewFromInt(1)
		if line.PresentationID != nil && *line.PresentationID != "" {
			pres, err := uc.presentations.GetByID(*line.PresentationID)
			if err != nil {
				if domain.KindOf(err) == domain.KindNotFound {
					return nil, domain.NotFoundf("la presentación indicada no existe")
				}
				return nil, err
			}
			factors[i] = pres.Factor()
		}
	}

	margin := uc.resolver.ResolveMargin(ctx, req.PriceRuleID, now)

	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		InvoiceNumber: req.InvoiceNumber,
		SupplierID:    req.SupplierID,
		BranchID:      req.BranchID,
		UserID:        userID,
		PriceRuleID:   req.PriceRuleID,
		VATRate:       uc.vatRate,
		Notes:         req.Notes,
		Date:          now,
	}

	err := uc.tx.Run(ctx, func(
		stockRepo repository.StockRepository,
		movements repository.MovementRepository,
		purchases repository.PurchaseRepository,
	) error {
		total := decimal.Zero
		for i, line := range req.Lines {
			factor := factors[i]
			lot := line.Lot
			if lot == "" {
				lot = stock.NewLotCode(now)
			}

			// Cantidad y costo en unidad base: una caja de 12 entra como
			// 12 unidades al costo unitario proporcional.
			baseQty := line.Quantity.Mul(factor)
			unitCost := line.PurchasePrice.Div(factor)
			subtotal := line.Quantity.Mul(line.PurchasePrice)
			salePrice := line.PurchasePrice.Mul(decimal.NewFromInt(1).Add(margin))

			key := entity.StockKey{
				ProductID:  line.ProductID,
				SupplierID: req.SupplierID,
				BranchID:   req.BranchID,
				AltCode:    line.AltCode,
			}
			rec, err := stockRepo.FindForUpdate(key)
			if err != nil {
				return err
			}
			if rec == nil {
				rec = stock.NewRecord(line.ProductID, req.SupplierID, req.BranchID,
					line.AltCode, lot, baseQty, unitCost, margin, now)
				rec.ID = uuid.New().String()
				if err := stockRepo.Create(rec); err != nil {
					return err
				}
			} else {
				stock.Blend(rec, baseQty, unitCost, margin, now)
				if err := stockRepo.Update(rec); err != nil {
					return err
				}
			}

			purchase.Lines = append(purchase.Lines, &entity.PurchaseLine{
				ID:             uuid.New().String(),
				PurchaseID:     purchase.ID,
				ProductID:      line.ProductID,
				PresentationID: line.PresentationID,
				AltCode:        line.AltCode,
				Lot:            lot,
				Quantity:       line.Quantity,
				PurchasePrice:  line.PurchasePrice,
				SalePrice:      salePrice,
				Subtotal:       subtotal,
				ReceivedAt:     now,
				Notes:          line.Notes,
			})
			total = total.Add(subtotal)

			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: line.ProductID,
				BranchID:  req.BranchID,
				Quantity:  baseQty,
				UnitPrice: unitCost,
				Type:      entity.MovementTypePurchase,
				Date:      now,
				Note:      "Compra #" + req.InvoiceNumber,
			}
			if err := movements.Create(mov); err != nil {
				return err
			}
		}

		purchase.TotalAmount = total
		return purchases.Create(purchase)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("purchase_id", purchase.ID).
		Str("invoice", purchase.InvoiceNumber).
		Str("branch_id", purchase.BranchID).
		Int("lines", len(purchase.Lines)).
		Msg("Compra registrada")

	return &dto.RegisterPurchaseResponse{PurchaseID: purchase.ID, BranchID: purchase.BranchID}, nil
}

// GetByID devuelve una compra con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return uc.purchases.GetByID(id)
}

// List devuelve compras de una sucursal (o de todas si branchID va vacío).
func (uc *UseCase) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchases.List(branchID, limit, offset)
}

func (uc *UseCase) validate(req *dto.RegisterPurchaseRequest) error {
	if req.BranchID == "" {
		return domain.ErrMissingBranch
	}
	if req.SupplierID == "" {
		return domain.Validation("debe especificar el proveedor")
	}
	if req.InvoiceNumber == "" {
		return domain.Validation("debe especificar el número de factura")
	}
	if len(req.Lines) == 0 {
		return domain.ErrEmptyPurchase
	}
	for _, line := range req.Lines {
		if line.ProductID == "" {
			return domain.Validation("cada línea debe indicar el producto")
		}
		if !line.Quantity.IsPositive() {
			return domain.Validation("la cantidad de cada línea debe ser mayor a cero")
		}
		if line.PurchasePrice.IsNegative() {
			return domain.Validation("el precio de compra no puede ser negativo")
		}
	}
	return nil
}
