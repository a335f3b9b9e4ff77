package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/savedjob"
)

// RegisterSavedJobRoutes wires bookmark endpoints. All of them act on the
// caller's own data, so the whole group sits behind auth.
func RegisterSavedJobRoutes(r fiber.Router, h *savedjob.Handler, auth fiber.Handler) {
	saved := r.Group("/saved-jobs", auth)

	saved.Post("/", h.Save)
	saved.Get("/user/:userId", h.ListByUser)
	saved.Get("/user/:userId/count", h.CountByUser)
	saved.Delete("/:id", h.Delete)
}
