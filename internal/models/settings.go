package models

import (
	"encoding/json"
	"time"
)

// Settings areas persisted per company in company_settings.
const (
	SettingsAreaMarketplace       = "marketplace"
	SettingsAreaQuoteAcceptance   = "quote_acceptance"
	SettingsAreaApprovals         = "approvals"
	SettingsAreaDocumentTemplates = "document_templates"
)

type CompanySetting struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Area      string          `json:"area"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MarketplaceSettings configures emergency jobs and auto-accept rules.
type MarketplaceSettings struct {
	AutoAcceptEnabled   bool     `json:"auto_accept_enabled"`
	AutoAcceptFlatMax   *float64 `json:"auto_accept_flat_max,omitempty"`
	AutoAcceptHourlyMax *float64 `json:"auto_accept_hourly_max,omitempty"`
	EmergencyEnabled    bool     `json:"emergency_enabled"`
}

// QuoteAcceptanceSettings configures the quote acceptance workflow.
type QuoteAcceptanceSettings struct {
	RequireSignature  bool     `json:"require_signature"`
	RequireDeposit    bool     `json:"require_deposit"`
	DepositPercent    *float64 `json:"deposit_percent,omitempty"`
	AutoExpireDays    *int     `json:"auto_expire_days,omitempty"`
	ApprovalThreshold *float64 `json:"approval_threshold,omitempty"`
}

// DocumentTemplate points at a stored template file.
type DocumentTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	FileURL   string    `json:"file_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
