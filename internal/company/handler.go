package company

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/account"
	"github.com/careershub/careers_api/internal/token"
)

// Handler exposes employer HTTP endpoints.
type Handler struct {
	svc    *Service
	issuer *token.Issuer
}

// NewHandler builds a company HTTP handler.
func NewHandler(svc *Service, issuer *token.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

type signupRequest struct {
	Name        string `json:"companyName"`
	Industry    string `json:"companyIndustry"`
	Email       string `json:"companyEmail"`
	Password    string `json:"companyPassword"`
	Size        string `json:"companySize"`
	FoundedYear int    `json:"foundedYear"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	State       string `json:"state"`
	LogoURL     string `json:"companyLogo"`
	ImageURL    string `json:"companyImage"`
}

// Signup creates an employer account.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	co, err := h.svc.Signup(c.UserContext(), SignupInput{
		Name:        req.Name,
		Industry:    req.Industry,
		Email:       req.Email,
		Password:    req.Password,
		Size:        req.Size,
		FoundedYear: req.FoundedYear,
		Phone:       req.Phone,
		City:        req.City,
		State:       req.State,
		LogoURL:     req.LogoURL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Company created successfully",
		"company": co,
	})
}

type loginRequest struct {
	Email    string `json:"companyEmail"`
	Password string `json:"companyPassword"`
}

// Login validates credentials and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "you must provide email and password")
	}
	co, err := h.svc.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return statusError(err)
	}
	signed, err := h.issuer.Issue(co.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Success",
		"token":   signed,
		"company": co,
	})
}

// Logout acknowledges a client-side logout. Tokens are stateless, so the
// server has nothing to revoke; the client discards its stored token.
func (h *Handler) Logout(c *fiber.Ctx) error {
	c.ClearCookie("token")
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Logout successful"})
}

// List returns all companies.
func (h *Handler) List(c *fiber.Ctx) error {
	companies, err := h.svc.List(c.UserContext())
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "success", "data": companies})
}

// Get returns one company.
func (h *Handler) Get(c *fiber.Ctx) error {
	co, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "success", "data": co})
}

// ListByCity returns companies located in the given city.
func (h *Handler) ListByCity(c *fiber.Ctx) error {
	city := c.Params("city")
	companies, err := h.svc.ListByCity(c.UserContext(), city)
	if err != nil {
		return statusError(err)
	}
	if len(companies) == 0 {
		return fiber.NewError(http.StatusNotFound, "no companies found in "+city)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "success", "data": companies})
}

// CountByCity counts companies located in the given city.
func (h *Handler) CountByCity(c *fiber.Ctx) error {
	count, err := h.svc.CountByCity(c.UserContext(), c.Params("city"))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "success", "count": count})
}

// Count counts all companies.
func (h *Handler) Count(c *fiber.Ctx) error {
	count, err := h.svc.Count(c.UserContext())
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "success", "count": count})
}

type updateRequest struct {
	Name        *string `json:"companyName"`
	Industry    *string `json:"companyIndustry"`
	Size        *string `json:"companySize"`
	FoundedYear *int    `json:"foundedYear"`
	Phone       *string `json:"phone"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	LogoURL     *string `json:"companyLogo"`
	ImageURL    *string `json:"companyImage"`
}

// Update merges the supplied company fields.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	co, err := h.svc.Update(c.UserContext(), c.Params("id"), UpdateInput{
		Name:        req.Name,
		Industry:    req.Industry,
		Size:        req.Size,
		FoundedYear: req.FoundedYear,
		Phone:       req.Phone,
		City:        req.City,
		State:       req.State,
		LogoURL:     req.LogoURL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "company data updated successfully",
		"data":    co,
	})
}

// Delete removes the company account.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "account deleted successfully"})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "company not found")
	case errors.Is(err, account.ErrEmailTaken):
		return fiber.NewError(http.StatusConflict, "company with this email already exists")
	case errors.Is(err, ErrInvalidPassword):
		return fiber.NewError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, ErrMissingFields):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
