package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
)

// ErrorHandler turns errors escaping a handler into JSON responses. Domain
// sentinels map to their natural status; anything unrecognized is a 500 and
// gets logged with the request path.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrCalendarUnavailable), errors.Is(err, domain.ErrModelUnavailable):
			code = fiber.StatusServiceUnavailable
		case errors.Is(err, domain.ErrRateLimited):
			code = fiber.StatusTooManyRequests
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
