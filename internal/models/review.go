package models

import "time"

type Review struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CompanyID    string    `json:"company_id"`
	WorkOrderID  string    `json:"work_order_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	ReviewTarget string    `json:"review_target"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewResult carries the stored review plus warnings from the
// best-effort review_completed flag update.
type ReviewResult struct {
	Review   Review   `json:"review"`
	Warnings []string `json:"warnings,omitempty"`
}
