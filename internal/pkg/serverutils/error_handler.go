package serverutils

import (
	"errors"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the last line of defense: anything a
// controller did not translate itself becomes a clean JSON envelope
// here, without leaking internals.
func ErrorHandlerMiddleware(sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			switch appErr.Kind {
			case apperror.KindInvalidInput:
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, appErr.Message))
			case apperror.KindNotOwned:
				return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, appErr.Message))
			case apperror.KindUpstream:
				sysLogger.Error("http", "upstream failure", map[string]interface{}{"error": appErr.Error(), "path": ctx.Path()})
				return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, "upstream service unavailable"))
			}
		}

		sysLogger.Error("http", "unhandled error", map[string]interface{}{"error": err.Error(), "path": ctx.Path()})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal Server Error"))
	}
}
