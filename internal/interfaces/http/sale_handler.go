package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/sales"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Register registra una venta con descuento de stock (POST /api/sales).
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Register(c.Context(), &in, GetUserID(c), GetUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID devuelve una venta con sus líneas (GET /api/sales/:id).
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(saleToResponse(s))
}

// List devuelve ventas paginadas (GET /api/sales?branch_id=...).
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), c.Query("branch_id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, saleToResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "sales": out})
}

func saleToResponse(s *entity.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		ClientID:      s.ClientID,
		BranchID:      s.BranchID,
		CashierName:   s.CashierName,
		Date:          fmtTime(s.Date),
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		VAT:           s.VAT,
		Total:         s.Total,
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}
