package middleware

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config carries the dependencies of the shared middleware stack.
type Config struct {
	Logger *zerolog.Logger
}

// Register attaches the ambient middlewares every surface runs behind:
// panic recovery, correlation IDs, the metrics/access-log pair and CORS.
// Auth and capability gates are mounted per route group, not here.
func Register(app *fiber.App, cfg Config) {
	requestLogger := zerolog.New(io.Discard)
	if cfg.Logger != nil {
		requestLogger = *cfg.Logger
	}

	app.Use(recover.New())
	app.Use(CorrelationID())
	app.Use(Observability(requestLogger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		// Browser clients read the correlation ID off error responses
		// when reporting problems.
		ExposeHeaders: "X-Correlation-ID",
	}))
}
