package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request identifier on both request and response.
const HeaderRequestID = "X-Request-ID"

const localRequestID = "request_id"

type requestIDKey struct{}

// RequestID tags every request with an identifier. A caller-supplied
// X-Request-ID is honoured so admin tooling can correlate retries; otherwise
// a fresh UUID is minted. The identifier is echoed on the response and bound
// to the request context for downstream logging.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey{}, id))

		return c.Next()
	}
}

// GetRequestID returns the identifier bound to the active request, or an
// empty string when the middleware did not run.
func GetRequestID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(localRequestID).(string); ok {
		return id
	}
	return ""
}

// RequestIDFromContext extracts the request identifier from a context
// produced by the middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
