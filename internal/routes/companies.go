package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/company"
	"github.com/careershub/careers_api/internal/otp"
)

// RegisterCompanyRoutes wires employer endpoints, including the password
// reset lifecycle.
func RegisterCompanyRoutes(r fiber.Router, h *company.Handler, pw *otp.Handler, auth fiber.Handler, otpLimit fiber.Handler) {
	companies := r.Group("/companies")

	companies.Post("/signup", h.Signup)
	companies.Post("/login", h.Login)
	companies.Post("/logout", h.Logout)

	companies.Post("/requestotp", otpLimit, pw.Request)
	companies.Post("/verifyotp", pw.Verify)
	companies.Post("/resetpassword", pw.Reset)

	companies.Get("/", h.List)
	companies.Get("/count", h.Count)
	companies.Get("/city/:city", h.ListByCity)
	companies.Get("/city/:city/count", h.CountByCity)
	companies.Get("/:id", h.Get)
	companies.Put("/:id", auth, h.Update)
	companies.Delete("/:id", auth, h.Delete)
}
