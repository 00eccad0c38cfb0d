package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/inventory"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
)

// StockHandler maneja las consultas del libro de stock y su bitácora.
type StockHandler struct {
	uc *inventory.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List devuelve registros de stock (GET /api/stock?branch_id=...&product_id=...).
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), c.Query("branch_id"), c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.StockRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, stockToResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}

// GetByID devuelve un registro de stock (GET /api/stock/:id).
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stockToResponse(rec))
}

// SetActive activa o desactiva un registro (PATCH /api/stock/:id/active).
func (h *StockHandler) SetActive(c *fiber.Ctx) error {
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetActive(c.Context(), c.Params("id"), in.Active); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro actualizado"})
}

// MovementsByProduct devuelve la bitácora de un producto (GET /api/stock/movements/product/:id).
func (h *StockHandler) MovementsByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.MovementsByProduct(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": movementsToResponse(list)})
}

// MovementsByBranch devuelve la bitácora de una sucursal (GET /api/stock/movements/branch/:id).
func (h *StockHandler) MovementsByBranch(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.MovementsByBranch(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": movementsToResponse(list)})
}

func stockToResponse(r *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		SupplierID:     r.SupplierID,
		BranchID:       r.BranchID,
		AltCode:        r.AltCode,
		Lot:            r.Lot,
		QuantityOnHand: r.QuantityOnHand,
		UnitCost:       r.UnitCost,
		UnitPrice:      r.UnitPrice,
		LastPurchaseAt: fmtTime(r.LastPurchaseAt),
		Active:         r.Active,
	}
}

func movementsToResponse(list []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			BranchID:  m.BranchID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			UnitPrice: m.UnitPrice,
			Date:      fmtTime(m.Date),
			Note:      m.Note,
		})
	}
	return out
}
