package api

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/hygiene"
)

// allowedResponseHeaders is the outbound allowlist. Everything else the
// framework or a handler sets gets dropped before the response leaves,
// so headers cannot identify the server stack. Transport-mandatory
// headers stay.
var allowedResponseHeaders = map[string]struct{}{
	"content-type":                 {},
	"content-length":               {},
	"date":                         {},
	"connection":                   {},
	"cache-control":                {},
	"x-request-id":                 {},
	"x-content-type-options":       {},
	"x-process-time":               {},
	"access-control-allow-origin":  {},
	"access-control-allow-headers": {},
	"access-control-allow-methods": {},
}

// scrubAndTime brackets every request: a fresh request id going in,
// header scrubbing and a jittered processing time going out. The jitter
// keeps response timing useless as a side channel.
func (s *Server) scrubAndTime(c fiber.Ctx) error {
	start := time.Now()
	requestID := uuid.NewString()

	err := c.Next()

	header := &c.Response().Header
	var drop []string
	header.VisitAll(func(k, _ []byte) {
		if _, ok := allowedResponseHeaders[strings.ToLower(string(k))]; !ok {
			drop = append(drop, string(k))
		}
	})
	for _, k := range drop {
		header.Del(k)
	}

	c.Set("X-Request-Id", requestID)
	c.Set("Cache-Control", "no-store")
	c.Set("X-Content-Type-Options", "nosniff")

	elapsed := time.Since(start) + hygiene.ResponseJitter()
	c.Set("X-Process-Time", fmt.Sprintf("%.4f", elapsed.Seconds()))
	return err
}

// rateLimit enforces the per-client ceiling. The key folds IP and
// user agent so one address rotating agents still buckets coarsely.
func (s *Server) rateLimit(c fiber.Ctx) error {
	key := hygiene.ClientHash(c.IP(), c.Get(fiber.HeaderUserAgent), "")
	if !s.limiter.Allow(key) {
		s.log.Warn("rate limited", zap.String("client", key), zap.String("path", c.Path()))
		return c.Status(fiber.StatusTooManyRequests).
			JSON(fiber.Map{"status": "error", "detail": "Too many requests"})
	}
	return c.Next()
}

// tamperCheck fingerprints callers that look like detection tooling:
// suspicious headers, bot user agents, scripted cadence. Flagged
// requests are logged and served anyway — refusing them would confirm
// exactly what the probe is looking for. Message-body probes are
// checked by the handlers once the body is parsed.
func (s *Server) tamperCheck(c fiber.Ctx) error {
	headers := hygiene.FilterHeaders(requestHeaders(c))

	if probe, trigger := hygiene.DetectProbe("", requestHeaders(c)); probe {
		s.log.Warn("probe fingerprinted",
			zap.String("trigger", trigger),
			zap.String("ip", c.IP()),
			zap.String("user_agent", headers["User-Agent"]))
	}

	client := hygiene.ClientHash(c.IP(), c.Get(fiber.HeaderUserAgent), "")
	if s.window.Observe(client) {
		s.log.Warn("scripted request cadence",
			zap.String("client", client), zap.String("path", c.Path()))
	}
	return c.Next()
}

// requireAPIKey authenticates platform calls: 401 when the header is
// absent, 403 when it does not match. The comparison is constant time.
func (s *Server) requireAPIKey(c fiber.Ctx) error {
	key := c.Get("X-API-Key")
	if key == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"status": "error", "detail": "API key required"})
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"status": "error", "detail": "Invalid API key"})
	}
	return c.Next()
}
