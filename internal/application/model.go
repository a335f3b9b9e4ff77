package application

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no application matches the identifier.
	ErrNotFound = errors.New("application not found")
	// ErrDuplicate is returned when a user already applied to the job.
	ErrDuplicate = errors.New("application already exists")
	// ErrInvalidStatus is returned for a decision other than accepted or rejected.
	ErrInvalidStatus = errors.New("invalid application status")
	// ErrMissingAnswers is returned when a job requires the additional form
	// and not every answer was supplied.
	ErrMissingAnswers = errors.New("additional form answers are required")
	// ErrNotifyFailure is returned when the decision was persisted but the
	// applicant notification could not be delivered.
	ErrNotifyFailure = errors.New("applicant notification failed")
)

// Application statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Application links a job seeker to a posting.
type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"jobId"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	FormSubmitted bool      `json:"formSubmitted"`
	FirstAnswer   string    `json:"firstAnswer"`
	SecondAnswer  string    `json:"secondAnswer"`
	ThirdAnswer   string    `json:"thirdAnswer"`
	FourthAnswer  string    `json:"fourthAnswer"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Page is the envelope returned by paginated listings.
type Page struct {
	TotalItems  int64         `json:"totalItems"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Data        []Application `json:"data"`
}
