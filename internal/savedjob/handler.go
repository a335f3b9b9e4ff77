package savedjob

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/job"
	"github.com/careershub/careers_api/internal/middleware"
)

// Handler exposes saved-job HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds a saved-job HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type saveRequest struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId"`
}

// Save bookmarks a job for the authenticated user.
func (h *Handler) Save(c *fiber.Ctx) error {
	var req saveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	userID := middleware.AccountID(c)
	if userID == "" {
		userID = req.UserID
	}
	entry, err := h.svc.Save(c.UserContext(), userID, req.JobID)
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusCreated).JSON(entry)
}

// ListByUser returns the user's bookmarks.
func (h *Handler) ListByUser(c *fiber.Ctx) error {
	saved, err := h.svc.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return statusError(err)
	}
	if len(saved) == 0 {
		return fiber.NewError(http.StatusNotFound, "no saved jobs found")
	}
	return c.Status(http.StatusOK).JSON(saved)
}

// Delete removes one bookmark.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Saved job deleted successfully"})
}

// CountByUser counts the user's bookmarks.
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
	case errors.Is(err, ErrAlreadySaved):
		return fiber.NewError(http.StatusConflict, err.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}
