package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/dto"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain"
)

var decimal100 = decimal.NewFromInt(100)

// statusForKind mapea el tipo de error de dominio al código HTTP.
func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict, domain.KindInsufficientStock,
		domain.KindInsufficientBalance, domain.KindStateTransition,
		domain.KindConcurrency:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail responde un error de dominio con su código HTTP y cuerpo estructurado.
// Los errores no tipados salen como 500 con mensaje genérico.
func fail(c *fiber.Ctx, err error) error {
	de := domain.AsError(err)
	return c.Status(statusForKind(de.Kind)).JSON(dto.ErrorResponse{
		Code:    string(de.Kind),
		Message: de.Message,
	})
}

// badBody respuesta estándar para cuerpos que no parsean.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    string(domain.KindValidation),
		Message: "cuerpo inválido",
	})
}

func fmtTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
