package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
)

// NewErrorHandler builds the fiber app-level error handler. Anything a
// route returns as a plain error lands here and becomes an enveloped
// JSON response.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= 500 {
			log.Error("HTTP", "Unhandled route error", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
