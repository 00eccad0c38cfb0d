package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/stock"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

// SystemCashier nombre registrado cuando la petición no trae identidad.
const SystemCashier = "sistema"

// UseCase registra ventas con descuento de stock atómico. Las tres fases
// (validación de stock, cálculo de precios, persistencia) corren dentro de una
// sola transacción con las filas de stock bloqueadas: si cualquier línea falla,
// ninguna se descuenta.
type UseCase struct {
	tx       TxRunner
	branches repository.BranchRepository
	sales    repository.SaleRepository
	vatRate  decimal.Decimal
	log      *logger.Logger
}

func NewUseCase(tx TxRunner, branches repository.BranchRepository, sales repository.SaleRepository, vatRate decimal.Decimal, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, branches: branches, sales: sales, vatRate: vatRate, log: log}
}

// Register valida y registra una venta. Los totales se recalculan siempre desde
// las líneas: el precio unitario llega con IVA incluido y el IVA se desglosa
// sobre el subtotal sin impuesto.
func (uc *UseCase) Register(ctx context.Context, req *dto.RegisterSaleRequest, userID, cashierName string) (*dto.RegisterSaleResponse, error) {
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

	invoice := req.InvoiceNumber
	if invoice == "" {
		invoice = "V" + now.Format("20060102150405")
	}
	if cashierName == "" {
		cashierName = SystemCashier
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		InvoiceNumber: invoice,
		ClientID:      req.ClientID,
		BranchID:      req.BranchID,
		UserID:        userID,
		CashierName:   cashierName,
		VATRate:       uc.vatRate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Date:          now,
		CreatedAt:     now,
	}

	err := uc.tx.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movements repository.MovementRepository,
		sales repository.SaleRepository,
	) error {
		// Fase 1: bloquear y validar disponibilidad de todas las líneas antes
		// de descontar cualquiera. Las líneas repetidas de un producto comparten
		// el mismo registro bloqueado y se validan contra la suma de sus
		// cantidades: dos lecturas de la fila producirían copias independientes
		// y la segunda escritura pisaría a la primera.
		locked := make(map[string]*entity.StockRecord, len(req.Lines))
		requested := make(map[string]decimal.Decimal, len(req.Lines))
		lockOrder := make([]string, 0, len(req.Lines))
		for _, line := range req.Lines {
			rec, ok := locked[line.ProductID]
			if !ok {
				var err error
				rec, err = stockRepo.FindForSaleForUpdate(line.ProductID, req.BranchID)
				if err != nil {
					return err
				}
				if rec == nil {
					return domain.ErrNoStockRecord
				}
				locked[line.ProductID] = rec
				lockOrder = append(lockOrder, line.ProductID)
			}
			total := requested[line.ProductID].Add(line.Quantity)
			if total.GreaterThan(rec.QuantityOnHand) {
				return domain.InsufficientStock(
					"stock insuficiente para el producto " + line.ProductID +
						". Disponible: " + rec.QuantityOnHand.String())
			}
			requested[line.ProductID] = total
		}

		// Fase 2: precios. El precio unitario incluye IVA; se desglosa por
		// línea redondeando a 2 decimales.
		vatDivisor := decimal.NewFromInt(1).Add(uc.vatRate)
		subtotal := decimal.Zero
		for _, line := range req.Lines {
			exVat := line.UnitPrice.Div(vatDivisor).Round(2)
			lineSubtotal := exVat.Mul(line.Quantity).Round(2)
			subtotal = subtotal.Add(lineSubtotal)

			sale.Lines = append(sale.Lines, &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Lot:       line.Lot,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  lineSubtotal,
			})
		}
		sale.Subtotal = subtotal
		sale.VAT = subtotal.Mul(uc.vatRate).Round(2)
		sale.Total = sale.Subtotal.Add(sale.VAT)

		// Fase 3: descuentos, movimientos y persistencia. Los descuentos se
		// acumulan sobre el registro compartido y cada registro se escribe
		// una sola vez con su cantidad final.
		for _, line := range req.Lines {
			if err := stock.Deduct(locked[line.ProductID], line.Quantity); err != nil {
				return err
			}
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: line.ProductID,
				BranchID:  req.BranchID,
				Quantity:  line.Quantity.Neg(),
				UnitPrice: line.UnitPrice,
				Type:      entity.MovementTypeSale,
				Date:      now,
				Note:      "Venta #" + invoice + " realizada por " + cashierName,
			}
			if err := movements.Create(mov); err != nil {
				return err
			}
		}
		for _, productID := range lockOrder {
			if err := stockRepo.Update(locked[productID]); err != nil {
				return err
			}
		}

		return sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("invoice", sale.InvoiceNumber).
		Str("branch_id", sale.BranchID).
		Str("total", sale.Total.String()).
		Msg("Venta registrada")

	return &dto.RegisterSaleResponse{
		InvoiceNumber: sale.InvoiceNumber,
		Subtotal:      sale.Subtotal,
		VAT:           sale.VAT,
		Total:         sale.Total,
	}, nil
}

// GetByID devuelve una venta con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return uc.sales.GetByID(id)
}

// List devuelve ventas de una sucursal (o de todas si branchID va vacío).
func (uc *UseCase) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Sale, error) {
	return uc.sales.List(branchID, limit, offset)
}

func (uc *UseCase) validate(req *dto.RegisterSaleRequest) error {
	if req.BranchID == "" {
		return domain.ErrMissingBranch
	}
	if len(req.Lines) == 0 {
		return domain.ErrEmptySale
	}
	for _, line := range req.Lines {
		if line.ProductID == "" {
			return domain.Validation("cada línea debe indicar el producto")
		}
		if !line.Quantity.IsPositive() {
			return domain.Validation("la cantidad de cada línea debe ser mayor a cero")
		}
		if line.UnitPrice.IsNegative() {
			return domain.Validation("el precio unitario no puede ser negativo")
		}
	}
	return nil
}
