package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/observability"
)

// Observability records Prometheus metrics and a structured access log for
// the two API surfaces. Requests outside /api/admin and /api/interview
// (health, metrics scrapes) pass through unrecorded.
func Observability(logger zerolog.Logger) fiber.Handler {
	observability.RegisterMetrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		surface := surfaceFor(c.Path())
		if surface == "" {
			return err
		}

		route := metricsRoute(c)
		method := c.Method()
		status := c.Response().StatusCode()
		statusLabel := strconv.Itoa(status)

		observability.HTTPRequests().WithLabelValues(surface, method, route, statusLabel).Inc()
		observability.HTTPLatency().WithLabelValues(surface, method, route).Observe(elapsed.Seconds())
		if status >= fiber.StatusBadRequest {
			observability.HTTPErrors().WithLabelValues(surface, method, route, statusLabel).Inc()
		}

		event := logger.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error()
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Str("surface", surface).
			Str("method", method).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request served")

		return err
	}
}

func surfaceFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/admin"):
		return "admin"
	case strings.HasPrefix(path, "/api/interview"):
		return "session"
	default:
		return ""
	}
}

// metricsRoute prefers the matched route template over the raw path so
// token-bearing session URLs do not explode label cardinality.
func metricsRoute(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" {
		return route.Path
	}
	return c.Path()
}
