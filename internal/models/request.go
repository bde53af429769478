package models

import "time"

// Request type enum values (request_type_enum).
const (
	RequestTypeStandard  = "STANDARD"
	RequestTypeEmergency = "EMERGENCY"
)

// Service mode values.
const (
	ServiceModeOnsite = "onsite"
	ServiceModeRemote = "remote"
	ServiceModeHybrid = "hybrid"
)

// Pricing preference enum values (pricing_preference_enum).
const (
	PricingFlat       = "FLAT"
	PricingHourly     = "HOURLY"
	PricingNegotiable = "NEGOTIABLE"
)

// Preferred time options for a request.
const (
	TimeOptionAnytime     = "anytime"
	TimeOptionSoonest     = "soonest"
	TimeOptionThisWeek    = "this_week"
	TimeOptionWeekendOnly = "weekend_only"
	TimeOptionSpecific    = "specific"
)

type MarketplaceRequest struct {
	ID                  string     `json:"id"`
	CustomerID          string     `json:"customer_id"`
	CompanyID           *string    `json:"company_id,omitempty"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	RequestType         string     `json:"request_type"`
	ServiceMode         string     `json:"service_mode"`
	PricingPreference   string     `json:"pricing_preference"`
	FlatRate            *float64   `json:"flat_rate,omitempty"`
	HourlyRate          *float64   `json:"hourly_rate,omitempty"`
	MaxResponses        *int       `json:"max_responses,omitempty"`
	RequiresInspection  bool       `json:"requires_inspection"`
	PreferredTimeOption string     `json:"preferred_time_option"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`

	Tags      []Tag                 `json:"tags,omitempty"`
	Responses []MarketplaceResponse `json:"responses,omitempty"`
}

// CreateRequestInput is the submission form payload. Guest submissions
// carry customer contact fields so an account can be provisioned.
type CreateRequestInput struct {
	CustomerID          string     `json:"customer_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	RequestType         string     `json:"request_type"`
	ServiceMode         string     `json:"service_mode"`
	PricingPreference   string     `json:"pricing_preference"`
	FlatRate            string     `json:"flat_rate"`
	HourlyRate          string     `json:"hourly_rate"`
	MaxResponses        *int       `json:"max_responses"`
	UnlimitedResponses  bool       `json:"unlimited_responses"`
	RequiresInspection  bool       `json:"requires_inspection"`
	PreferredTimeOption string     `json:"preferred_time_option"`
	StartTime           *time.Time `json:"start_time"`
	EndTime             *time.Time `json:"end_time"`
	Tags                []string   `json:"tags"`

	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	Guest      bool   `json:"guest"`
}
