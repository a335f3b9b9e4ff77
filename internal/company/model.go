package company

import "time"

// Company represents a registered employer account.
type Company struct {
	ID           string    `json:"id"`
	Name         string    `json:"companyName"`
	Industry     string    `json:"companyIndustry"`
	Email        string    `json:"companyEmail"`
	Size         string    `json:"companySize"`
	FoundedYear  int       `json:"foundedYear"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PasswordHash []byte    `json:"-"`
	LogoURL      string    `json:"companyLogo"`
	ImageURL     string    `json:"companyImage"`
	CreatedAt    time.Time `json:"createdAt"`
}
