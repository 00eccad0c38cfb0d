package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/giftcard"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
)

// GiftCardHandler maneja el ciclo de vida de gift cards.
type GiftCardHandler struct {
	uc *giftcard.UseCase
}

// NewGiftCardHandler construye el handler.
func NewGiftCardHandler(uc *giftcard.UseCase) *GiftCardHandler {
	return &GiftCardHandler{uc: uc}
}

// Issue emite una tarjeta nueva (POST /api/giftcards).
func (h *GiftCardHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueGiftCardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	card, err := h.uc.Issue(c.Context(), &in, GetUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(giftCardToResponse(card))
}

// Redeem descuenta saldo de una tarjeta (POST /api/giftcards/redeem/:code).
func (h *GiftCardHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemGiftCardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	card, err := h.uc.Redeem(c.Context(), c.Params("code"), in.Amount, GetUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(giftCardToResponse(card))
}

// Balance devuelve el saldo de una tarjeta (GET /api/giftcards/balance/:code).
func (h *GiftCardHandler) Balance(c *fiber.Ctx) error {
	card, err := h.uc.Balance(c.Context(), c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.GiftCardBalanceResponse{
		Code:      card.Code,
		Balance:   card.Balance,
		Currency:  card.Currency,
		State:     string(card.State),
		ExpiresAt: fmtTime(card.ExpiresAt),
	})
}

// Void anula una tarjeta (DELETE /api/giftcards/:id). La anulación es lógica:
// la fila no se elimina, transiciona a VOIDED.
func (h *GiftCardHandler) Void(c *fiber.Ctx) error {
	card, err := h.uc.Void(c.Context(), c.Params("id"), GetUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(giftCardToResponse(card))
}

// Update modifica una tarjeta (PUT /api/giftcards/:id).
func (h *GiftCardHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGiftCardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	card, err := h.uc.Update(c.Context(), c.Params("id"), &in, GetUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(giftCardToResponse(card))
}

// GetByID devuelve una tarjeta (GET /api/giftcards/:id).
func (h *GiftCardHandler) GetByID(c *fiber.Ctx) error {
	card, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(giftCardToResponse(card))
}

// GetByCode devuelve una tarjeta por código (GET /api/giftcards/by-code/:code).
func (h *GiftCardHandler) GetByCode(c *fiber.Ctx) error {
	card, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(giftCardToResponse(card))
}

// List devuelve tarjetas paginadas (GET /api/giftcards).
func (h *GiftCardHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.GiftCardResponse, 0, len(list))
	for _, card := range list {
		out = append(out, giftCardToResponse(card))
	}
	return c.JSON(fiber.Map{"total": len(out), "giftcards": out})
}

func giftCardToResponse(g *entity.GiftCard) dto.GiftCardResponse {
	return dto.GiftCardResponse{
		ID:            g.ID,
		Code:          g.Code,
		InitialAmount: g.InitialAmount,
		Balance:       g.Balance,
		Currency:      g.Currency,
		IssuedAt:      fmtTime(g.IssuedAt),
		ExpiresAt:     fmtTime(g.ExpiresAt),
		State:         string(g.State),
		CreatedBy:     g.CreatedBy,
		ModifiedBy:    g.ModifiedBy,
	}
}
