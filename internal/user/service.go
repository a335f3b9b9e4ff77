package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careershub/careers_api/internal/account"
)

const defaultProfilePhoto = "/images/User-Profile-PNG-Image.svg"

// ErrInvalidCredentials is returned when login email or password is wrong.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages job-seeker accounts.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the profile supplied at registration.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	City            string
	Country         string
	Category        string
	ExperienceLevel string
	DesiredJobType  string
	ProfilePhoto    string
	Skills          []string
	Overview        string
}

// Register creates a new job seeker with a hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if in.Email == "" || in.Password == "" {
		return User{}, errors.New("email and password are required")
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return User{}, account.ErrEmailTaken
	} else if !errors.Is(err, account.ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	photo := in.ProfilePhoto
	if photo == "" {
		photo = defaultProfilePhoto
	}

	now := time.Now().UTC()
	u := User{
		ID:              uuid.New().String(),
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		PasswordHash:    hash,
		City:            in.City,
		Country:         in.Country,
		Category:        in.Category,
		ExperienceLevel: in.ExperienceLevel,
		DesiredJobType:  in.DesiredJobType,
		ProfilePhoto:    photo,
		Skills:          in.Skills,
		Overview:        in.Overview,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate verifies email and password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// RegisterWithGoogle creates a password-less account bound to a Google identity.
func (s *Service) RegisterWithGoogle(ctx context.Context, firstName, lastName, email, googleID string) (User, error) {
	if email == "" || googleID == "" {
		return User{}, errors.New("email and googleId are required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, account.ErrEmailTaken
	} else if !errors.Is(err, account.ErrNotFound) {
		return User{}, err
	}

	now := time.Now().UTC()
	u := User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		GoogleID:     googleID,
		ProfilePhoto: defaultProfilePhoto,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// AuthenticateWithGoogle resolves an account by the email asserted by the
// social provider. No password check — the provider already authenticated.
func (s *Service) AuthenticateWithGoogle(ctx context.Context, email string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	return u, err
}

// List returns all job seekers.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches one job seeker by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateInput carries the profile fields that may be updated. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	City            *string
	Country         *string
	Category        *string
	ExperienceLevel *string
	DesiredJobType  *string
	ProfilePhoto    *string
	Skills          *[]string
	Overview        *string
}

// Update merges the supplied fields into the stored profile.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&u.FirstName, in.FirstName)
	apply(&u.LastName, in.LastName)
	apply(&u.Phone, in.Phone)
	apply(&u.City, in.City)
	apply(&u.Country, in.Country)
	apply(&u.Category, in.Category)
	apply(&u.ExperienceLevel, in.ExperienceLevel)
	apply(&u.DesiredJobType, in.DesiredJobType)
	apply(&u.ProfilePhoto, in.ProfilePhoto)
	apply(&u.Overview, in.Overview)
	if in.Skills != nil {
		u.Skills = *in.Skills
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleActivity flips the account's active flag and returns the new state.
func (s *Service) ToggleActivity(ctx context.Context, id string) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.IsActive = !u.IsActive
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPasswordHash(ctx, id, hash)
}
