package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const defaultPageSize = 10

// Service manages job postings.
type Service struct {
	repo Repository
}

// NewService creates a new job service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PostInput carries the posting supplied by a company.
type PostInput struct {
	CompanyID         string
	Title             string
	Description       string
	Category          string
	Type              string
	State             string
	City              string
	SalaryMin         int64
	SalaryMax         int64
	HasAdditionalForm bool
}

// Post publishes a new job.
func (s *Service) Post(ctx context.Context, in PostInput) (Job, error) {
	if in.CompanyID == "" || in.Title == "" {
		return Job{}, errors.New("companyId and title are required")
	}

	j := Job{
		ID:                uuid.New().String(),
		CompanyID:         in.CompanyID,
		Title:             in.Title,
		Description:       in.Description,
		Category:          in.Category,
		Type:              in.Type,
		State:             in.State,
		City:              in.City,
		SalaryMin:         in.SalaryMin,
		SalaryMax:         in.SalaryMax,
		HasAdditionalForm: in.HasAdditionalForm,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

// List returns one page of the board, newest postings first.
func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	jobs, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return Page{}, err
	}
	return Page{
		TotalItems:  total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
		Data:        jobs,
	}, nil
}

// Get fetches one job by id.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByCompany returns jobs posted by the given company.
func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]Job, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// ListBySalary returns all jobs ordered by descending maximum salary.
func (s *Service) ListBySalary(ctx context.Context) ([]Job, error) {
	return s.repo.ListBySalary(ctx)
}

// ListByState returns jobs located in the given state.
func (s *Service) ListByState(ctx context.Context, state string) ([]Job, error) {
	return s.repo.ListByState(ctx, state)
}

// UpdateInput carries the posting fields that may be updated.
type UpdateInput struct {
	Title             *string
	Description       *string
	Category          *string
	Type              *string
	State             *string
	City              *string
	SalaryMin         *int64
	SalaryMax         *int64
	HasAdditionalForm *bool
}

// Update merges the supplied fields into the stored posting.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Job, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Job{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&j.Title, in.Title)
	apply(&j.Description, in.Description)
	apply(&j.Category, in.Category)
	apply(&j.Type, in.Type)
	apply(&j.State, in.State)
	apply(&j.City, in.City)
	if in.SalaryMin != nil {
		j.SalaryMin = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		j.SalaryMax = *in.SalaryMax
	}
	if in.HasAdditionalForm != nil {
		j.HasAdditionalForm = *in.HasAdditionalForm
	}

	if err := s.repo.Update(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Delete removes one posting.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteAll removes every posting.
func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// Count counts all postings.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CountByState counts postings located in the given state.
func (s *Service) CountByState(ctx context.Context, state string) (int64, error) {
	return s.repo.CountByState(ctx, state)
}

// CountByCompany counts postings published by the given company.
func (s *Service) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	return s.repo.CountByCompany(ctx, companyID)
}
