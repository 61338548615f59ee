package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/observability"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

// MiddlewareConfig bundles what the global middlewares need.
type MiddlewareConfig struct {
	App       config.AppConfig
	RateLimit config.RateLimitConfig
	Logger    *zap.Logger
	Metrics   *observability.Metrics
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics, !cfg.App.IsProduction()))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use("/api", NewAPILimiter(cfg.RateLimit))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every error as
// {"message": ..., "error": {"code", "message", "details"}}. With exposeCause
// a 500 also carries the underlying error text in details.cause.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, exposeCause bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(observability.RoutePattern(c), c.Method(), domainErr.Code)

				details := map[string]any{}
				for k, v := range domainErr.Details {
					details[k] = v
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed",
						zap.String("path", c.Path()),
						zap.Any("request_id", c.Locals("requestid")),
						zap.Error(domainErr))
					if exposeCause && domainErr.Err != nil {
						details["cause"] = domainErr.Err.Error()
					}
				}

				body := fiber.Map{"code": domainErr.Code, "message": domainErr.Message}
				if len(details) > 0 {
					body["details"] = details
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"message": domainErr.Message, "error": body})
				err = nil
			}
		}()
		return c.Next()
	}
}
