package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/pkg/logger"
)

// writeError traduce los errores de dominio a status HTTP con cuerpo {"error", "code"}.
// Un conflicto de estado (confirmar dos veces) responde 400, no 409.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidUnit):
		status, code = fiber.StatusBadRequest, "INVALID_UNIT"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusBadRequest, "CONFLICT"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
}

// ErrorHandler manejador global de Fiber: errores no atendidos por un handler (404 de ruta,
// 405, panics recuperados) salen con el mismo cuerpo JSON.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		code := "INTERNAL"
		switch status {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "BAD_REQUEST"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
	}
}
