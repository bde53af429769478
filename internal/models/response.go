package models

import "time"

// Response status values as stored in marketplace_responses.response_status.
// The mixed casing ("declined" lowercase) matches the production data.
const (
	ResponseInterested = "INTERESTED"
	ResponseOffered    = "OFFERED"
	ResponseAccepted   = "ACCEPTED"
	ResponseRejected   = "REJECTED"
	ResponseDeclined   = "declined"
)

type MarketplaceResponse struct {
	ID             string     `json:"id"`
	RequestID      string     `json:"request_id"`
	CompanyID      string     `json:"company_id"`
	ResponseStatus string     `json:"response_status"`
	ProposedRate   *float64   `json:"proposed_rate,omitempty"`
	CounterOffer   *float64   `json:"counter_offer,omitempty"`
	AvailableStart *time.Time `json:"available_start,omitempty"`
	AvailableEnd   *time.Time `json:"available_end,omitempty"`
	Message        *string    `json:"message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	Company *Company            `json:"company,omitempty"`
	Request *MarketplaceRequest `json:"request,omitempty"`
}

// AcceptResult is returned by the accept operation: the work order created
// (or found, when the accept was already applied) plus non-fatal warnings
// from best-effort side effects.
type AcceptResult struct {
	WorkOrder      WorkOrder `json:"work_order"`
	AlreadyApplied bool      `json:"already_applied"`
	Warnings       []string  `json:"warnings,omitempty"`
}
