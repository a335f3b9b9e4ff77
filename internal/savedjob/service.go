package savedjob

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careershub/careers_api/internal/job"
)

// Service manages bookmarked jobs.
type Service struct {
	repo   Repository
	jobs   job.Repository
	logger *slog.Logger
}

// NewService creates a new saved-job service.
func NewService(repo Repository, jobs job.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, jobs: jobs, logger: logger}
}

// Save bookmarks a job for the user. The posting must exist, and a job can
// only be saved once per user.
func (s *Service) Save(ctx context.Context, userID, jobID string) (SavedJob, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return SavedJob{}, err
	}

	entry := SavedJob{
		ID:        uuid.New().String(),
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return SavedJob{}, err
	}
	return entry, nil
}

// ListByUser returns the user's bookmarks with each posting attached. A
// bookmark whose posting has since been removed is skipped.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]SavedJob, error) {
	saved, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]SavedJob, 0, len(saved))
	for _, entry := range saved {
		j, err := s.jobs.FindByID(ctx, entry.JobID)
		if err != nil {
			s.logger.Warn("saved job points at missing posting", "job_id", entry.JobID, "error", err)
			continue
		}
		entry.Job = &j
		out = append(out, entry)
	}
	return out, nil
}

// Delete removes one bookmark.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CountByUser counts the user's bookmarks.
func (s *Service) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}
