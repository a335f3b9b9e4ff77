package job

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes job HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds a job HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type postRequest struct {
	CompanyID         string `json:"companyId"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Type              string `json:"jobType"`
	State             string `json:"state"`
	City              string `json:"city"`
	SalaryMin         int64  `json:"salaryMin"`
	SalaryMax         int64  `json:"salaryMax"`
	HasAdditionalForm bool   `json:"additionalJobForm"`
}

// Post publishes a new job.
func (h *Handler) Post(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	j, err := h.svc.Post(c.UserContext(), PostInput{
		CompanyID:         req.CompanyID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Type:              req.Type,
		State:             req.State,
		City:              req.City,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		HasAdditionalForm: req.HasAdditionalForm,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(j)
}

// List returns one page of the board.
func (h *Handler) List(c *fiber.Ctx) error {
	page, err := h.svc.List(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", defaultPageSize))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(page)
}

// Get returns one job.
func (h *Handler) Get(c *fiber.Ctx) error {
	j, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(j)
}

// ListByCompany returns jobs posted by the given company.
func (h *Handler) ListByCompany(c *fiber.Ctx) error {
	jobs, err := h.svc.ListByCompany(c.UserContext(), c.Params("companyId"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(jobs)
}

// ListBySalary returns jobs ordered by descending maximum salary.
func (h *Handler) ListBySalary(c *fiber.Ctx) error {
	jobs, err := h.svc.ListBySalary(c.UserContext())
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(jobs)
}

// ListByState returns jobs located in the given state.
func (h *Handler) ListByState(c *fiber.Ctx) error {
	jobs, err := h.svc.ListByState(c.UserContext(), c.Params("state"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(jobs)
}

type updateRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	Type              *string `json:"jobType"`
	State             *string `json:"state"`
	City              *string `json:"city"`
	SalaryMin         *int64  `json:"salaryMin"`
	SalaryMax         *int64  `json:"salaryMax"`
	HasAdditionalForm *bool   `json:"additionalJobForm"`
}

// Update merges the supplied posting fields.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	j, err := h.svc.Update(c.UserContext(), c.Params("id"), UpdateInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Type:              req.Type,
		State:             req.State,
		City:              req.City,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		HasAdditionalForm: req.HasAdditionalForm,
	})
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(j)
}

// Delete removes one posting.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Job deleted successfully"})
}

// DeleteAll removes every posting.
func (h *Handler) DeleteAll(c *fiber.Ctx) error {
	if err := h.svc.DeleteAll(c.UserContext()); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "All jobs deleted successfully"})
}

// Count counts all postings.
func (h *Handler) Count(c *fiber.Ctx) error {
	count, err := h.svc.Count(c.UserContext())
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"count": count})
}

// CountByState counts postings located in the given state.
func (h *Handler) CountByState(c *fiber.Ctx) error {
	count, err := h.svc.CountByState(c.UserContext(), c.Params("state"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"count": count})
}

// CountByCompany counts postings published by the given company.
func (h *Handler) CountByCompany(c *fiber.Ctx) error {
	count, err := h.svc.CountByCompany(c.UserContext(), c.Params("companyId"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"count": count})
}

func statusError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "job not found")
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}
