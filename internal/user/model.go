package user

import "time"

// User represents a registered job seeker.
type User struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PasswordHash    []byte    `json:"-"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Category        string    `json:"category"`
	ExperienceLevel string    `json:"experienceLevel"`
	DesiredJobType  string    `json:"desiredJobType"`
	ProfilePhoto    string    `json:"profilePhoto"`
	Skills          []string  `json:"skills"`
	Overview        string    `json:"overview"`
	GoogleID        string    `json:"-"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
