package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/pricing"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
)

// PriceRuleHandler administra reglas de precio y expone la resolución de margen.
type PriceRuleHandler struct {
	rules    repository.PriceRuleRepository
	resolver *pricing.Resolver
}

// NewPriceRuleHandler construye el handler.
func NewPriceRuleHandler(rules repository.PriceRuleRepository, resolver *pricing.Resolver) *PriceRuleHandler {
	return &PriceRuleHandler{rules: rules, resolver: resolver}
}

// Create crea una regla (POST /api/price-rules).
func (h *PriceRuleHandler) Create(c *fiber.Ctx) error {
	rule, err := h.parseRule(c)
	if err != nil {
		return fail(c, err)
	}
	rule.ID = uuid.New().String()
	if err := h.rules.Create(rule); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ruleToResponse(rule))
}

// Update actualiza una regla (PUT /api/price-rules/:id).
func (h *PriceRuleHandler) Update(c *fiber.Ctx) error {
	rule, err := h.parseRule(c)
	if err != nil {
		return fail(c, err)
	}
	rule.ID = c.Params("id")
	if err := h.rules.Update(rule); err != nil {
		return fail(c, err)
	}
	return c.JSON(ruleToResponse(rule))
}

// GetByID devuelve una regla (GET /api/price-rules/:id).
func (h *PriceRuleHandler) GetByID(c *fiber.Ctx) error {
	rule, err := h.rules.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ruleToResponse(rule))
}

// List devuelve reglas paginadas (GET /api/price-rules).
func (h *PriceRuleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.rules.List(page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.PriceRuleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ruleToResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "rules": out})
}

// Resolve devuelve el margen vigente para un tipo de cliente
// (GET /api/price-rules/resolve?client_type=...).
func (h *PriceRuleHandler) Resolve(c *fiber.Ctx) error {
	clientType := c.Query("client_type")
	margin := h.resolver.ResolveByClientType(c.Context(), clientType, time.Now())
	hundred := margin.Mul(decimal100)
	return c.JSON(dto.ResolvedMarginResponse{Percentage: hundred, Margin: margin})
}

func (h *PriceRuleHandler) parseRule(c *fiber.Ctx) (*entity.PriceRule, error) {
	var in dto.PriceRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, domain.Validation("cuerpo inválido")
	}
	rule := &entity.PriceRule{
		ClientType:  in.ClientType,
		Percentage:  in.Percentage,
		IsPromotion: in.IsPromotion,
		Active:      in.Active,
	}
	var err error
	if rule.StartsAt, err = parseTimePtr(in.StartsAt); err != nil {
		return nil, domain.Validation("starts_at inválido, se espera RFC 3339")
	}
	if rule.EndsAt, err = parseTimePtr(in.EndsAt); err != nil {
		return nil, domain.Validation("ends_at inválido, se espera RFC 3339")
	}
	if err := pricing.ValidateRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ruleToResponse(r *entity.PriceRule) dto.PriceRuleResponse {
	return dto.PriceRuleResponse{
		ID:          r.ID,
		ClientType:  r.ClientType,
		Percentage:  r.Percentage,
		IsPromotion: r.IsPromotion,
		StartsAt:    fmtTimePtr(r.StartsAt),
		EndsAt:      fmtTimePtr(r.EndsAt),
		Active:      r.Active,
	}
}
