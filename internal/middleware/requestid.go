package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the header and Locals key carrying the request identifier.
const RequestIDKey = "X-Request-ID"

// RequestID ensures each request has a stable request identifier for tracing and logging.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(RequestIDKey)
		if reqID == "" {
			reqID = uuid.NewString()
			c.Set(RequestIDKey, reqID)
		}

		c.Locals(RequestIDKey, reqID)

		return c.Next()
	}
}
