package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careershub/careers_api/internal/job"
	"github.com/careershub/careers_api/internal/mail"
	"github.com/careershub/careers_api/internal/user"
)

const defaultPageSize = 10

// Applicants resolves applicant contact details for decision notifications.
// user.Repository satisfies it.
type Applicants interface {
	FindByID(ctx context.Context, id string) (user.User, error)
}

// Service manages the application lifecycle: apply, review, decide.
type Service struct {
	repo       Repository
	jobs       job.Repository
	applicants Applicants
	mailer     mail.Mailer
	logger     *slog.Logger
}

// NewService creates a new application service.
func NewService(repo Repository, jobs job.Repository, applicants Applicants, mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{repo: repo, jobs: jobs, applicants: applicants, mailer: mailer, logger: logger}
}

// ApplyInput carries a user's application to a job.
type ApplyInput struct {
	JobID        string
	UserID       string
	FirstAnswer  string
	SecondAnswer string
	ThirdAnswer  string
	FourthAnswer string
}

// Apply records an application and bumps the posting's seeker count. When the
// posting requires the additional form, every answer must be present.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (Application, error) {
	j, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return Application{}, err
	}

	formSubmitted := false
	if j.HasAdditionalForm {
		if in.FirstAnswer == "" || in.SecondAnswer == "" || in.ThirdAnswer == "" || in.FourthAnswer == "" {
			return Application{}, ErrMissingAnswers
		}
		formSubmitted = true
	}

	a := Application{
		ID:            uuid.New().String(),
		JobID:         in.JobID,
		UserID:        in.UserID,
		Status:        StatusPending,
		FormSubmitted: formSubmitted,
		FirstAnswer:   in.FirstAnswer,
		SecondAnswer:  in.SecondAnswer,
		ThirdAnswer:   in.ThirdAnswer,
		FourthAnswer:  in.FourthAnswer,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}

	if err := s.jobs.IncrementSeekers(ctx, in.JobID); err != nil {
		s.logger.Warn("seeker count increment failed", "job_id", in.JobID, "error", err)
	}
	return a, nil
}

// Get fetches one application by id.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByJob returns one page of applications submitted to the given job.
func (s *Service) ListByJob(ctx context.Context, jobID string, page, limit int) (Page, error) {
	total, err := s.repo.CountByJob(ctx, jobID)
	if err != nil {
		return Page{}, err
	}
	page, limit = normalizePage(page, limit)
	apps, err := s.repo.ListByJob(ctx, jobID, (page-1)*limit, limit)
	if err != nil {
		return Page{}, err
	}
	return buildPage(apps, total, page, limit), nil
}

// ListByUser returns one page of applications submitted by the given user.
func (s *Service) ListByUser(ctx context.Context, userID string, page, limit int) (Page, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return Page{}, err
	}
	page, limit = normalizePage(page, limit)
	apps, err := s.repo.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return Page{}, err
	}
	return buildPage(apps, total, page, limit), nil
}

// Decide records the company's verdict and notifies the applicant by email.
// The status update is persisted first; a failed notification surfaces as
// ErrNotifyFailure with the decision already standing.
func (s *Service) Decide(ctx context.Context, id, status string) (Application, error) {
	if status != StatusAccepted && status != StatusRejected {
		return Application{}, ErrInvalidStatus
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Application{}, err
	}
	a.Status = status

	if err := s.notify(ctx, a); err != nil {
		s.logger.Warn("decision notification failed", "application_id", a.ID, "error", err)
		return a, fmt.Errorf("%w: %v", ErrNotifyFailure, err)
	}
	return a, nil
}

// Delete withdraws an application.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CountByJob counts the applications submitted to the given job.
func (s *Service) CountByJob(ctx context.Context, jobID string) (int64, error) {
	return s.repo.CountByJob(ctx, jobID)
}

// CountByUser counts the applications submitted by the given user.
func (s *Service) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func (s *Service) notify(ctx context.Context, a Application) error {
	applicant, err := s.applicants.FindByID(ctx, a.UserID)
	if err != nil {
		return fmt.Errorf("applicant lookup: %w", err)
	}

	j, err := s.jobs.FindByID(ctx, a.JobID)
	if err != nil {
		return fmt.Errorf("job lookup: %w", err)
	}

	subject := fmt.Sprintf("Update on your application for %s", j.Title)
	body := fmt.Sprintf("Hello %s,\n\nYour application for the position %q has been %s.\n\nBest regards,\nThe Careers Team",
		applicant.FirstName, j.Title, a.Status)
	return s.mailer.Send(ctx, mail.Message{To: applicant.Email, Subject: subject, Body: body})
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func buildPage(apps []Application, total int64, page, limit int) Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Page{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Data:        apps,
	}
}
