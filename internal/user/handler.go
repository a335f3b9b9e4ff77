package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/account"
	"github.com/careershub/careers_api/internal/middleware"
	"github.com/careershub/careers_api/internal/token"
)

// Handler exposes job-seeker HTTP endpoints.
type Handler struct {
	svc    *Service
	issuer *token.Issuer
}

// NewHandler builds a user HTTP handler.
func NewHandler(svc *Service, issuer *token.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

type registerRequest struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Password        string   `json:"password"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Category        string   `json:"category"`
	ExperienceLevel string   `json:"experienceLevel"`
	DesiredJobType  string   `json:"desiredJobType"`
	ProfilePhoto    string   `json:"profilePhoto"`
	Skills          []string `json:"skills"`
	Overview        string   `json:"overview"`
}

// Register creates an account and returns a bearer token alongside it.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Register(c.UserContext(), RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		City:            req.City,
		Country:         req.Country,
		Category:        req.Category,
		ExperienceLevel: req.ExperienceLevel,
		DesiredJobType:  req.DesiredJobType,
		ProfilePhoto:    req.ProfilePhoto,
		Skills:          req.Skills,
		Overview:        req.Overview,
	})
	if err != nil {
		return statusError(err)
	}
	signed, err := h.issuer.Issue(u.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"token": signed, "user": u})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return statusError(err)
	}
	signed, err := h.issuer.Issue(u.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"token": signed, "user": u})
}

type googleRegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	GoogleID  string `json:"googleId"`
}

// RegisterWithGoogle creates a password-less account from a social identity.
func (h *Handler) RegisterWithGoogle(c *fiber.Ctx) error {
	var req googleRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.RegisterWithGoogle(c.UserContext(), req.FirstName, req.LastName, req.Email, req.GoogleID)
	if err != nil {
		return statusError(err)
	}
	signed, err := h.issuer.Issue(u.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"token": signed, "user": u})
}

// LoginWithGoogle resolves an account by provider-asserted email.
func (h *Handler) LoginWithGoogle(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.AuthenticateWithGoogle(c.UserContext(), req.Email)
	if err != nil {
		return statusError(err)
	}
	signed, err := h.issuer.Issue(u.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"token": signed, "user": u})
}

// List returns all job seekers.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.svc.List(c.UserContext())
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(users)
}

// Get returns one job seeker.
func (h *Handler) Get(c *fiber.Ctx) error {
	u, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

type updateRequest struct {
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	Phone           *string   `json:"phone"`
	City            *string   `json:"city"`
	Country         *string   `json:"country"`
	Category        *string   `json:"category"`
	ExperienceLevel *string   `json:"experienceLevel"`
	DesiredJobType  *string   `json:"desiredJobType"`
	ProfilePhoto    *string   `json:"profilePhoto"`
	Skills          *[]string `json:"skills"`
	Overview        *string   `json:"overview"`
}

// Update merges the supplied profile fields.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Update(c.UserContext(), c.Params("id"), UpdateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		City:            req.City,
		Country:         req.Country,
		Category:        req.Category,
		ExperienceLevel: req.ExperienceLevel,
		DesiredJobType:  req.DesiredJobType,
		ProfilePhoto:    req.ProfilePhoto,
		Skills:          req.Skills,
		Overview:        req.Overview,
	})
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

// Delete removes the account.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "User deleted successfully"})
}

// ToggleActivity flips the account's active flag.
func (h *Handler) ToggleActivity(c *fiber.Ctx) error {
	u, err := h.svc.ToggleActivity(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword replaces the password of the authenticated account. The
// token identity must match the targeted user.
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if middleware.AccountID(c) != targetID {
		return fiber.NewError(http.StatusForbidden, "unauthorized action")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	err := h.svc.ChangePassword(c.UserContext(), targetID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, ErrInvalidCredentials) {
		return fiber.NewError(http.StatusBadRequest, "current password is incorrect")
	}
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Password changed successfully"})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "user not found")
	case errors.Is(err, account.ErrEmailTaken):
		return fiber.NewError(http.StatusConflict, "user already exists")
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
