package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careershub/careers_api/internal/account"
)

const (
	defaultLogoURL  = "/images/company-logo-default.svg"
	defaultImageURL = "/images/company-cover-default.png"
)

var (
	// ErrInvalidPassword is returned when the password does not match the
	// stored hash for a known email.
	ErrInvalidPassword = errors.New("invalid email or password")
	// ErrMissingFields is returned when a signup omits required fields.
	ErrMissingFields = errors.New("email, password, name, industry, state, and city are required")
)

// Service manages employer accounts.
type Service struct {
	repo Repository
}

// NewService creates a new company service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SignupInput carries the company profile supplied at signup.
type SignupInput struct {
	Name        string
	Industry    string
	Email       string
	Password    string
	Size        string
	FoundedYear int
	Phone       string
	City        string
	State       string
	LogoURL     string
	ImageURL    string
}

// Signup creates a new employer account with a hashed password.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Company, error) {
	if in.Name == "" || in.Industry == "" || in.Email == "" || in.Password == "" ||
		in.State == "" || in.City == "" {
		return Company{}, ErrMissingFields
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return Company{}, account.ErrEmailTaken
	} else if !errors.Is(err, account.ErrNotFound) {
		return Company{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Company{}, err
	}

	logo := in.LogoURL
	if logo == "" {
		logo = defaultLogoURL
	}
	image := in.ImageURL
	if image == "" {
		image = defaultImageURL
	}

	co := Company{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Industry:     in.Industry,
		Email:        in.Email,
		Size:         in.Size,
		FoundedYear:  in.FoundedYear,
		Phone:        in.Phone,
		City:         in.City,
		State:        in.State,
		PasswordHash: hash,
		LogoURL:      logo,
		ImageURL:     image,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, co); err != nil {
		return Company{}, err
	}
	return co, nil
}

// Authenticate verifies email and password. An unknown email surfaces as
// account.ErrNotFound, a bad password as ErrInvalidPassword.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Company, error) {
	co, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Company{}, err
	}
	if err := bcrypt.CompareHashAndPassword(co.PasswordHash, []byte(password)); err != nil {
		return Company{}, ErrInvalidPassword
	}
	return co, nil
}

// List returns all companies.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

// Get fetches one company by id.
func (s *Service) Get(ctx context.Context, id string) (Company, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByCity returns companies located in the given city.
func (s *Service) ListByCity(ctx context.Context, city string) ([]Company, error) {
	return s.repo.ListByCity(ctx, city)
}

// CountByCity counts companies located in the given city.
func (s *Service) CountByCity(ctx context.Context, city string) (int64, error) {
	return s.repo.CountByCity(ctx, city)
}

// Count counts all companies.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// UpdateInput carries the company fields that may be updated. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Name        *string
	Industry    *string
	Size        *string
	FoundedYear *int
	Phone       *string
	City        *string
	State       *string
	LogoURL     *string
	ImageURL    *string
}

// Update merges the supplied fields into the stored profile.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Company, error) {
	co, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Company{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&co.Name, in.Name)
	apply(&co.Industry, in.Industry)
	apply(&co.Size, in.Size)
	apply(&co.Phone, in.Phone)
	apply(&co.City, in.City)
	apply(&co.State, in.State)
	apply(&co.LogoURL, in.LogoURL)
	apply(&co.ImageURL, in.ImageURL)
	if in.FoundedYear != nil {
		co.FoundedYear = *in.FoundedYear
	}

	if err := s.repo.Update(ctx, co); err != nil {
		return Company{}, err
	}
	return co, nil
}

// Delete removes the company account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
