package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/job"
)

// RegisterJobRoutes wires job-board endpoints. Reads are public; postings
// are managed behind auth.
func RegisterJobRoutes(r fiber.Router, h *job.Handler, auth fiber.Handler) {
	jobs := r.Group("/jobs")

	jobs.Post("/", auth, h.Post)
	jobs.Get("/", h.List)
	jobs.Get("/salary", h.ListBySalary)
	jobs.Get("/count", h.Count)
	jobs.Get("/state/:state", h.ListByState)
	jobs.Get("/state/:state/count", h.CountByState)
	jobs.Get("/company/:companyId", h.ListByCompany)
	jobs.Get("/company/:companyId/count", h.CountByCompany)
	jobs.Get("/:id", h.Get)
	jobs.Put("/:id", auth, h.Update)
	jobs.Delete("/", auth, h.DeleteAll)
	jobs.Delete("/:id", auth, h.Delete)
}
