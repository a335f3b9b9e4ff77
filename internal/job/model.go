package job

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no job matches the given identifier.
var ErrNotFound = errors.New("job not found")

// Job represents a posting published by a company.
type Job struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"companyId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Type              string    `json:"jobType"`
	State             string    `json:"state"`
	City              string    `json:"city"`
	SalaryMin         int64     `json:"salaryMin"`
	SalaryMax         int64     `json:"salaryMax"`
	SeekersCount      int       `json:"jobSeekersCount"`
	HasAdditionalForm bool      `json:"additionalJobForm"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Page is the envelope returned by the paginated board listing.
type Page struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        []Job `json:"data"`
}
