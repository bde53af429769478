package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"portalBack/internal/models"
	"portalBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type accountStore interface {
	CreateWithCustomer(ctx context.Context, customer models.Customer, account models.PortalAccount) (models.PortalAccount, models.Customer, error)
	GetByEmail(ctx context.Context, email string) (models.PortalAccount, error)
	GetByID(ctx context.Context, id string) (models.PortalAccount, error)
	GetCustomerByID(ctx context.Context, id string) (models.Customer, error)
	UpdateLastLogin(ctx context.Context, accountID string) error
	SetPassword(ctx context.Context, accountID, passwordHash string) error
	MarkVerified(ctx context.Context, accountID string) error
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
	DeleteSessionsForAccount(ctx context.Context, accountID string) error
}

type AccountService struct {
	AccountRepo  accountStore
	TokenManager *utils.Manager
	SigningKey   string
}

type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SessionState is the resolved portal session: a typed state plus the
// loaded account and customer when authenticated or pending verification.
type SessionState struct {
	State    string                `json:"state"`
	Account  *models.PortalAccount `json:"account,omitempty"`
	Customer *models.Customer      `json:"customer,omitempty"`
}

// SignUp provisions a self-signup portal account. The account starts in
// pending_verification, never silently authenticated.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (SessionState, error) {
	rawEmail := strings.TrimSpace(input.Email)
	input.Email = SanitizeEmail(strings.ToLower(rawEmail))
	if strings.TrimSpace(input.Name) == "" {
		return SessionState{}, &models.ValidationError{Field: "name", Message: "Please enter your name"}
	}
	if rawEmail == "" {
		return SessionState{}, &models.ValidationError{Field: "email", Message: "Please enter your email"}
	}
	if input.Email == "" {
		return SessionState{}, &models.ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if len(input.Password) < 8 {
		return SessionState{}, &models.ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	var phone *string
	if raw := strings.TrimSpace(input.Phone); raw != "" {
		p := SanitizePhone(raw)
		if p == "" {
			return SessionState{}, &models.ValidationError{Field: "phone", Message: "Please enter a valid phone number"}
		}
		phone = &p
	}

	_, err := s.AccountRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return SessionState{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrNoRecord) {
		return SessionState{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return SessionState{}, err
	}

	account, customer, err := s.AccountRepo.CreateWithCustomer(ctx,
		models.Customer{Name: input.Name, Email: input.Email, Phone: phone},
		models.PortalAccount{
			Email:        input.Email,
			PasswordHash: string(hash),
			CreatedVia:   models.CreatedViaSelfSignup,
		})
	if err != nil {
		return SessionState{}, err
	}

	return SessionState{
		State:    models.AuthStateFor(&account),
		Account:  &account,
		Customer: &customer,
	}, nil
}

// SignIn checks credentials and opens a session: a short-lived access token
// plus a refresh-token row. The last-login stamp is best-effort and comes
// back as a warning when it fails.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (models.SignInResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.AccountRepo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNoRecord) {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.SignInResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	customer, err := s.AccountRepo.GetCustomerByID(ctx, account.CustomerID)
	if err != nil {
		return models.SignInResponse{}, err
	}

	accessToken, err := s.newAccessToken(account.ID, "customer")
	if err != nil {
		return models.SignInResponse{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.SignInResponse{}, err
	}
	_, err = s.AccountRepo.CreateSession(ctx, models.Session{
		AccountID:    account.ID,
		RefreshToken: refreshToken,
		Role:         "customer",
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.SignInResponse{}, err
	}

	resp := models.SignInResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
		Customer:     customer,
	}
	if err := s.AccountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("last login update failed: %v", err))
	}
	return resp, nil
}

// SignOut closes every session for the account.
func (s *AccountService) SignOut(ctx context.Context, accountID string) error {
	return s.AccountRepo.DeleteSessionsForAccount(ctx, accountID)
}

// ResolveSession maps a refresh token to a typed session state: missing or
// expired tokens are unauthenticated, unverified self-signup accounts are
// pending verification, everything else is authenticated.
func (s *AccountService) ResolveSession(ctx context.Context, refreshToken string) (SessionState, error) {
	if refreshToken == "" {
		return SessionState{State: models.AuthUnauthenticated}, nil
	}
	session, err := s.AccountRepo.GetSessionByToken(ctx, refreshToken)
	if errors.Is(err, models.ErrSessionNotFound) {
		return SessionState{State: models.AuthUnauthenticated}, nil
	}
	if err != nil {
		return SessionState{}, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		return SessionState{State: models.AuthUnauthenticated}, nil
	}

	account, err := s.AccountRepo.GetByID(ctx, session.AccountID)
	if errors.Is(err, models.ErrNoRecord) {
		return SessionState{State: models.AuthUnauthenticated}, nil
	}
	if err != nil {
		return SessionState{}, err
	}
	customer, err := s.AccountRepo.GetCustomerByID(ctx, account.CustomerID)
	if err != nil {
		return SessionState{}, err
	}

	return SessionState{
		State:    models.AuthStateFor(&account),
		Account:  &account,
		Customer: &customer,
	}, nil
}

// VerifyEmail moves a pending_verification account to authenticated on its
// next session resolve.
func (s *AccountService) VerifyEmail(ctx context.Context, accountID string) error {
	return s.AccountRepo.MarkVerified(ctx, accountID)
}

// SetupPassword sets a password for invited accounts that still need one.
func (s *AccountService) SetupPassword(ctx context.Context, accountID, password string) error {
	if len(password) < 8 {
		return &models.ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.AccountRepo.SetPassword(ctx, accountID, string(hash))
}

func (s *AccountService) newAccessToken(accountID, role string) (string, error) {
	claims := &models.Claims{
		AccountID: accountID,
		Role:      role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.SigningKey))
}
