package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupRateLimitApp(t *testing.T, maxPerMin int) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	app.Post("/requestotp", OTPRateLimit(cache, maxPerMin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, mr
}

func requestOTP(t *testing.T, app *fiber.App, email string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/requestotp", strings.NewReader(`{"email":"`+email+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestOTPRateLimitAllowsWithinBudget(t *testing.T) {
	app, _ := setupRateLimitApp(t, 3)

	for i := 0; i < 3; i++ {
		if status := requestOTP(t, app, "a@x.com"); status != fiber.StatusOK {
			t.Fatalf("request %d: expected %d got %d", i+1, fiber.StatusOK, status)
		}
	}
}

func TestOTPRateLimitBlocksExcess(t *testing.T) {
	app, _ := setupRateLimitApp(t, 3)

	for i := 0; i < 3; i++ {
		requestOTP(t, app, "a@x.com")
	}
	if status := requestOTP(t, app, "a@x.com"); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected %d got %d", fiber.StatusTooManyRequests, status)
	}

	// A different email has its own budget.
	if status := requestOTP(t, app, "b@x.com"); status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}
}

func TestOTPRateLimitResetsAfterWindow(t *testing.T) {
	app, mr := setupRateLimitApp(t, 1)

	requestOTP(t, app, "a@x.com")
	if status := requestOTP(t, app, "a@x.com"); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected %d got %d", fiber.StatusTooManyRequests, status)
	}

	mr.FastForward(2 * time.Minute)

	if status := requestOTP(t, app, "a@x.com"); status != fiber.StatusOK {
		t.Fatalf("expected %d after window reset got %d", fiber.StatusOK, status)
	}
}
