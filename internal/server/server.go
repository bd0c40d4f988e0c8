// internal/server/server.go
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"credit-scoring-service/internal/common/config"
	cerrors "credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/common/observability"
	"credit-scoring-service/internal/scoring"
)

// Server wires the fiber app, the scoring engine and the cross-cutting
// middleware into the single HTTP surface this service exposes.
type Server struct {
	app        *fiber.App
	config     *config.Config
	logger     logger.Logger
	engine     *scoring.Engine
	errHandler *cerrors.ErrorHandler
	obs        *observability.Observability
}

func New(cfg *config.Config, log logger.Logger, engine *scoring.Engine, obs *observability.Observability) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	})

	s := &Server{
		app:        app,
		config:     cfg,
		logger:     log.WithFields(map[string]interface{}{"component": "http-server"}),
		engine:     engine,
		errHandler: cerrors.NewErrorHandler(log),
		obs:        obs,
	}

	s.registerMiddleware()
	s.registerRoutes()

	return s
}

func (s *Server) registerMiddleware() {
	// All origins, methods and headers; credentials stay disabled.
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "*",
		AllowCredentials: false,
	}))

	s.app.Use(s.requestID)
}

// requestID tags every request with a uuid for log correlation.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := uuid.NewString()
	c.Locals("requestId", id)
	c.Set("X-Request-Id", id)
	return c.Next()
}

func (s *Server) registerRoutes() {
	s.app.Post("/evaluate_credit", s.evaluateCredit)
	s.app.Get("/health", s.health)
}

// App exposes the underlying fiber app, used by tests via app.Test().
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving the API until the listener fails or is shut down.
func (s *Server) Listen() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"address": s.config.Server.ListenAddress(),
	})
	return s.app.Listen(s.config.Server.ListenAddress())
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
