package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/application"
)

// RegisterApplicationRoutes wires application endpoints.
func RegisterApplicationRoutes(r fiber.Router, h *application.Handler, auth fiber.Handler) {
	apps := r.Group("/applications")

	apps.Post("/", auth, h.Apply)
	apps.Get("/job/:jobId", h.ListByJob)
	apps.Get("/job/:jobId/count", h.CountByJob)
	apps.Get("/user/:userId", h.ListByUser)
	apps.Get("/user/:userId/count", h.CountByUser)
	apps.Get("/:id", h.Get)
	apps.Patch("/:id/status", auth, h.Decide)
	apps.Delete("/:id", auth, h.Delete)
}
