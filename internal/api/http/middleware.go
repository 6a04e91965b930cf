package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/queueshq/queues-service/internal/observability"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// RegisterMiddlewares installs the global middleware chain.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(recover.New())
	app.Use(observability.RequestLogger(logger, metrics))
}

// ErrorHandler renders DomainErrors as the standard error envelope. Wire it
// via fiber.Config.ErrorHandler.
func ErrorHandler(logger *zap.Logger, metrics *observability.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		errors.As(err, &fiberErr)

		domainErr := apperrors.ToDomainError(err)
		status := domainErr.HTTPStatus
		code := domainErr.Code
		message := domainErr.Message
		if fiberErr != nil {
			status = fiberErr.Code
			code = "HTTP_ERROR"
			message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		metrics.RecordError(c.Path(), c.Method(), code)

		body := fiber.Map{
			"error": fiber.Map{
				"code":    code,
				"message": message,
			},
		}
		if len(domainErr.Details) > 0 && fiberErr == nil {
			body["error"].(fiber.Map)["details"] = domainErr.Details
		}
		return c.Status(status).JSON(body)
	}
}
