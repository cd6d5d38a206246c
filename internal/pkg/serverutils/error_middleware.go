package serverutils

import (
	"errors"

	"case-governance-be/internal/repository/contract"
	"case-governance-be/internal/service"
	"case-governance-be/pkg/lock"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into JSON responses.
// Transition races map to 409 so clients know to retry; everything else
// unexpected is a 500 with no internal detail leaked.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{Message: fiberErr.Message})
		}

		if errors.Is(err, contract.ErrVersionConflict) || errors.Is(err, lock.ErrNotAcquired) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorBody{
				Message: "Concurrent transition in progress, retry the operation",
			})
		}

		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorBody{Message: "Record not found"})
		}

		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorBody{Message: "Invalid credentials"})
		}

		if errors.Is(err, service.ErrRetrievalUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorBody{
				Message: "Evidence retrieval backend unavailable",
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Message: "Internal server error",
		})
	}
}
