package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/token"
)

// AccountIDKey is the Locals key under which the authenticated account
// identifier is exposed to downstream handlers.
const AccountIDKey = "account_id"

// RequireAuth validates a bearer token on protected routes and injects the
// authenticated account identifier into the request context. On any failure
// the request is short-circuited with 401 and the handler never runs.
func RequireAuth(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authz, "Bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized, you must log in first")
		}

		accountID, err := issuer.Verify(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return fiber.NewError(http.StatusUnauthorized, "unauthorized, token has expired")
			}
			return fiber.NewError(http.StatusUnauthorized, "unauthorized, invalid token")
		}

		c.Locals(AccountIDKey, accountID)
		return c.Next()
	}
}

// AccountID returns the authenticated account identifier set by RequireAuth.
func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals(AccountIDKey).(string)
	return id
}
