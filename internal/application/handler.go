package application

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/job"
	"github.com/careershub/careers_api/internal/middleware"
)

// Handler exposes application HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds an application HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type applyRequest struct {
	JobID        string `json:"jobId"`
	UserID       string `json:"userId"`
	FirstAnswer  string `json:"firstAnswer"`
	SecondAnswer string `json:"secondAnswer"`
	ThirdAnswer  string `json:"thirdAnswer"`
	FourthAnswer string `json:"fourthAnswer"`
}

// Apply submits an application for the authenticated user.
func (h *Handler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	userID := middleware.AccountID(c)
	if userID == "" {
		userID = req.UserID
	}
	a, err := h.svc.Apply(c.UserContext(), ApplyInput{
		JobID:        req.JobID,
		UserID:       userID,
		FirstAnswer:  req.FirstAnswer,
		SecondAnswer: req.SecondAnswer,
		ThirdAnswer:  req.ThirdAnswer,
		FourthAnswer: req.FourthAnswer,
	})
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusCreated).JSON(a)
}

// Get returns one application.
func (h *Handler) Get(c *fiber.Ctx) error {
	a, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(a)
}

// ListByJob returns one page of a job's applications.
func (h *Handler) ListByJob(c *fiber.Ctx) error {
	page, err := h.svc.ListByJob(c.UserContext(), c.Params("jobId"), c.QueryInt("page", 1), c.QueryInt("limit", defaultPageSize))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(page)
}

// ListByUser returns one page of a user's applications.
func (h *Handler) ListByUser(c *fiber.Ctx) error {
	page, err := h.svc.ListByUser(c.UserContext(), c.Params("userId"), c.QueryInt("page", 1), c.QueryInt("limit", defaultPageSize))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(page)
}

type decideRequest struct {
	Status string `json:"status"`
}

// Decide records the company's verdict on an application.
func (h *Handler) Decide(c *fiber.Ctx) error {
	var req decideRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Decide(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(a)
}

// Delete withdraws an application.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Application deleted successfully"})
}

// CountByJob counts a job's applications.
func (h *Handler) CountByJob(c *fiber.Ctx) error {
	count, err := h.svc.CountByJob(c.UserContext(), c.Params("jobId"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"count": count})
}

// CountByUser counts a user's applications.
func (h *Handler) CountByUser(c *fiber.Ctx) error {
	count, err := h.svc.CountByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"count": count})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, job.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrMissingAnswers), errors.Is(err, ErrInvalidStatus):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotifyFailure):
		return fiber.NewError(http.StatusInternalServerError, "failed to notify applicant")
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}
