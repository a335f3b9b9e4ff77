package otp

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/account"
)

// Handler exposes the request/verify/reset endpoints for one account type.
// Users and companies mount separate handlers over their own managers.
type Handler struct {
	manager *Manager
}

// NewHandler builds an OTP HTTP handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

type requestBody struct {
	Email string `json:"email"`
}

// Request issues a fresh code and mails it to the account's address.
func (h *Handler) Request(c *fiber.Ctx) error {
	var req requestBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email is required")
	}
	if err := h.manager.Request(c.UserContext(), req.Email); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "OTP sent successfully"})
}

type verifyBody struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Verify checks a submitted code against the pending record.
func (h *Handler) Verify(c *fiber.Ctx) error {
	var req verifyBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.manager.Verify(c.UserContext(), req.Email, req.OTP); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "OTP verified successfully"})
}

type resetBody struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Reset replaces the password once the pending code has been verified.
func (h *Handler) Reset(c *fiber.Ctx) error {
	var req resetBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "email and newPassword are required")
	}
	if err := h.manager.Reset(c.UserContext(), req.Email, req.NewPassword); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Password reset successful"})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrExpired), errors.Is(err, ErrInvalid), errors.Is(err, ErrNotVerified):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrMailFailure):
		return fiber.NewError(http.StatusInternalServerError, "failed to send OTP")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
