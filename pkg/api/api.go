// Package api is the HTTP front for the honeypot: fiber v3 routes under
// /api/v1, auth and rate limiting on the way in, header scrubbing and
// timing jitter on the way out. Handlers translate between the wire
// formats and the engagement pipeline; they hold no conversation state
// of their own.
package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverware "github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/config"
	"github.com/jaal-labs/jaal/pkg/engage"
	"github.com/jaal-labs/jaal/pkg/hygiene"
	"github.com/jaal-labs/jaal/pkg/session"
)

// ServiceName and ServiceVersion identify the deployment on the root
// route. Deliberately bland; the service must read like any chat API.
const (
	ServiceName    = "ScamIntelli API"
	ServiceVersion = "1.0.0"
)

// Server owns the fiber app and the request-scoped guards around the
// engagement pipeline.
type Server struct {
	app      *fiber.App
	pipeline *engage.Pipeline
	sessions *session.Manager
	cfg      *config.Config
	log      *zap.Logger

	limiter *hygiene.Limiter
	window  *hygiene.RateWindow

	stopGC chan struct{}
	gcDone chan struct{}
}

// New wires the HTTP surface. The pipeline and manager must be non-nil;
// a nil logger is replaced with a no-op one.
func New(cfg *config.Config, pipeline *engage.Pipeline, sessions *session.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		pipeline: pipeline,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
		limiter:  hygiene.NewLimiter(cfg.RateLimitPerMinute, time.Minute),
		window:   hygiene.NewRateWindow(),
		stopGC:   make(chan struct{}),
		gcDone:   make(chan struct{}),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      ServiceName,
		ErrorHandler: s.errorHandler,
	})
	s.routes()
	go s.gcLoop()
	return s
}

// App exposes the underlying fiber app; tests drive it through
// app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("http listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the limiter GC.
func (s *Server) Shutdown() error {
	close(s.stopGC)
	<-s.gcDone
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Use(recoverware.New())
	s.app.Use(cors.New())
	s.app.Use(s.scrubAndTime)

	s.app.Get("/", s.root)

	v1 := s.app.Group("/api/v1")
	v1.Get("/health", s.health)

	v1.Use(s.rateLimit)
	if s.cfg.EnableTamperProtection {
		v1.Use(s.tamperCheck)
	}
	v1.Use(s.requireAPIKey)

	v1.Post("/message", s.handleMessage)
	v1.Post("/honeypot", s.handleHoneypot)
	v1.Get("/session/:id", s.getSession)
	v1.Delete("/session/:id", s.endSession)
	v1.Get("/summary/:id", s.getSummary)
}

// errorHandler is the boundary for everything the handlers did not
// catch. Details stay generic so repeated errors cannot fingerprint
// code paths.
func (s *Server) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}

	detail := hygiene.GenericErrorDetail()
	if code == fiber.StatusNotFound {
		detail = "Not found"
	}
	if code >= 500 {
		s.log.Error("unhandled request error",
			zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"status": "error", "detail": detail})
}

func (s *Server) root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    ServiceName,
		"version": ServiceVersion,
		"status":  "running",
	})
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// requestHeaders snapshots the inbound header set for probe analysis.
func requestHeaders(c fiber.Ctx) map[string]string {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(k, v []byte) {
		headers[string(k)] = string(v)
	})
	return headers
}

// gcLoop reaps idle limiter and window entries so hostile traffic
// cannot grow the maps without bound.
func (s *Server) gcLoop() {
	defer close(s.gcDone)
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			dropped := s.limiter.Sweep() + s.window.Sweep(10*time.Minute)
			if dropped > 0 {
				s.log.Debug("rate maps swept", zap.Int("dropped", dropped))
			}
		}
	}
}

// lowerTrim folds a wire field for comparison.
func lowerTrim(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
