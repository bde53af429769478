package models

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Account creation channels for customer_portal_accounts.created_via.
const (
	CreatedViaSelfSignup = "self_signup"
	CreatedViaInvite     = "invite"
	CreatedViaImport     = "import"
)

// PortalAccount links an authenticated identity to a Customer row.
type PortalAccount struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customer_id"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	CreatedVia         string     `json:"created_via"`
	EmailVerified      bool       `json:"email_verified"`
	NeedsPasswordSetup bool       `json:"needs_password_setup"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
