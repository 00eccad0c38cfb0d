package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/purchasing"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP de compras.
type PurchaseHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Register postea una compra (POST /api/purchases).
func (h *PurchaseHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Register(c.Context(), &in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID devuelve una compra con sus líneas (GET /api/purchases/:id).
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchaseToResponse(p))
}

// List devuelve compras paginadas (GET /api/purchases?branch_id=...).
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), c.Query("branch_id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, purchaseToResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "purchases": out})
}

func purchaseToResponse(p *entity.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:            p.ID,
		InvoiceNumber: p.InvoiceNumber,
		SupplierID:    p.SupplierID,
		BranchID:      p.BranchID,
		Date:          fmtTime(p.Date),
		VATRate:       p.VATRate,
		TotalAmount:   p.TotalAmount,
		Notes:         p.Notes,
	}
	for _, l := range p.Lines {
		resp.Lines = append(resp.Lines, dto.PurchaseLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			Lot:           l.Lot,
			AltCode:       l.AltCode,
			Quantity:      l.Quantity,
			PurchasePrice: l.PurchasePrice,
			SalePrice:     l.SalePrice,
			Subtotal:      l.Subtotal,
		})
	}
	return resp
}
