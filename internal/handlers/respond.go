package handlers

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
)

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondList(c *fiber.Ctx, message string, data interface{}, count int) error {
	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

// respondErr maps typed application errors onto their status and code
// token. Anything untyped is logged, reported and collapsed into a generic
// 500 so no internals leak; development mode adds a detail field.
func respondErr(c *fiber.Ctx, cfg *config.Config, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(dto.Response{
			Success: false,
			Message: appErr.Message,
			Error:   appErr.Code,
		})
	}

	slog.Error("unhandled error",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err.Error(),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	resp := dto.Response{
		Success: false,
		Message: apperrors.ErrInternal.Message,
		Error:   apperrors.ErrInternal.Code,
	}
	if cfg.IsDevelopment() {
		resp.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
