package savedjob

import (
	"errors"
	"time"

	"github.com/careershub/careers_api/internal/job"
)

var (
	// ErrNotFound is returned when no saved entry matches the identifier.
	ErrNotFound = errors.New("saved job not found")
	// ErrAlreadySaved is returned when the user already bookmarked the job.
	ErrAlreadySaved = errors.New("job already saved")
)

// SavedJob is a posting bookmarked by a job seeker. Job is populated on
// listings only.
type SavedJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	JobID     string    `json:"jobId"`
	Job       *job.Job  `json:"job,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
