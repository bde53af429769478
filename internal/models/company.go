package models

import "time"

type Company struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	AvgRating      float64   `json:"avg_rating"`
	RatingCount    int       `json:"rating_count"`
	CompanyLogoURL *string   `json:"company_logo_url,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
