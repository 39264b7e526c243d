package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
)

// respondError traduce un error de negocio a la respuesta HTTP. Los
// *OpError llevan clase y mensaje apto para el cliente; cualquier otro error
// es un 500 con mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	if opErr, ok := domain.AsOpError(err); ok {
		return c.Status(statusFor(opErr.Kind)).JSON(dto.ErrorResponse{
			Code:    string(opErr.Kind),
			Message: opErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    string(domain.KindInternal),
		Message: "error interno",
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindDuplicate:
		return fiber.StatusConflict
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
