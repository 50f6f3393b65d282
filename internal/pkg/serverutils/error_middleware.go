package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts handler errors into JSON responses.
// fiber errors keep their status; anything else becomes a generic 500
// so raw adapter errors never reach the caller.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Printf("[ERROR] unhandled: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
			fiber.StatusInternalServerError,
			"System temporarily unavailable. If this is a medical emergency, call your local emergency services.",
		))
	}
}
