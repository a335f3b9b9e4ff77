package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/otp"
	"github.com/careershub/careers_api/internal/user"
)

// RegisterUserRoutes wires job-seeker endpoints, including the password
// reset lifecycle.
func RegisterUserRoutes(r fiber.Router, h *user.Handler, pw *otp.Handler, auth fiber.Handler, otpLimit fiber.Handler) {
	users := r.Group("/users")

	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Post("/register/google", h.RegisterWithGoogle)
	users.Post("/login/google", h.LoginWithGoogle)

	users.Post("/requestotp", otpLimit, pw.Request)
	users.Post("/verifyotp", pw.Verify)
	users.Post("/resetpassword", pw.Reset)

	users.Get("/", h.List)
	users.Get("/:id", h.Get)
	users.Put("/:id", auth, h.Update)
	users.Delete("/:id", auth, h.Delete)
	users.Patch("/:id/activity", auth, h.ToggleActivity)
	users.Put("/:id/password", auth, h.ChangePassword)
}
