package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type Session struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	RefreshToken string    `json:"refresh_token"`
	Role         string    `json:"role"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

type Claims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	jwt.StandardClaims
}

// SignInResponse is the payload returned after a successful sign in.
type SignInResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Account      PortalAccount `json:"account"`
	Customer     Customer      `json:"customer"`
	Warnings     []string      `json:"warnings,omitempty"`
}
