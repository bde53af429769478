package services

import (
	"context"
	"errors"
	"testing"

	"portalBack/internal/models"
)

type stubAccountStore struct {
	createdCustomers []models.Customer
	createdAccounts  []models.PortalAccount
}

func (s *stubAccountStore) CreateWithCustomer(ctx context.Context, customer models.Customer, account models.PortalAccount) (models.PortalAccount, models.Customer, error) {
	customer.ID = "cust-1"
	account.ID = "acct-1"
	account.CustomerID = customer.ID
	s.createdCustomers = append(s.createdCustomers, customer)
	s.createdAccounts = append(s.createdAccounts, account)
	return account, customer, nil
}

func (s *stubAccountStore) GetByEmail(ctx context.Context, email string) (models.PortalAccount, error) {
	return models.PortalAccount{}, models.ErrNoRecord
}

func (s *stubAccountStore) GetByID(ctx context.Context, id string) (models.PortalAccount, error) {
	return models.PortalAccount{}, models.ErrNoRecord
}

func (s *stubAccountStore) GetCustomerByID(ctx context.Context, id string) (models.Customer, error) {
	return models.Customer{ID: id}, nil
}

func (s *stubAccountStore) UpdateLastLogin(ctx context.Context, accountID string) error { return nil }

func (s *stubAccountStore) SetPassword(ctx context.Context, accountID, passwordHash string) error {
	return nil
}

func (s *stubAccountStore) MarkVerified(ctx context.Context, accountID string) error { return nil }

func (s *stubAccountStore) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	return session, nil
}

func (s *stubAccountStore) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	return models.Session{}, models.ErrSessionNotFound
}

func (s *stubAccountStore) DeleteSessionsForAccount(ctx context.Context, accountID string) error {
	return nil
}

func TestSignUpNormalizesContact(t *testing.T) {
	store := &stubAccountStore{}
	svc := &AccountService{AccountRepo: store}

	state, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Jordan Lee",
		Email:    "  Jordan.Lee@Example.COM ",
		Phone:    "(403) 555-0134",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if state.State != models.AuthPendingVerification {
		t.Fatalf("expected pending_verification, got %s", state.State)
	}
	customer := store.createdCustomers[0]
	if customer.Email != "jordan.lee@example.com" {
		t.Fatalf("expected normalized email, got %q", customer.Email)
	}
	if customer.Phone == nil || *customer.Phone != "+14035550134" {
		t.Fatalf("expected E.164 phone, got %v", customer.Phone)
	}
}

func TestSignUpRejectsBadContact(t *testing.T) {
	cases := []struct {
		name  string
		input SignUpInput
		field string
	}{
		{"malformed email", SignUpInput{Name: "Jordan", Email: "jordan@", Password: "hunter2hunter2"}, "email"},
		{"email with spaces", SignUpInput{Name: "Jordan", Email: "jordan example.com", Password: "hunter2hunter2"}, "email"},
		{"short phone", SignUpInput{Name: "Jordan", Email: "jordan@example.com", Phone: "555-0134", Password: "hunter2hunter2"}, "phone"},
		{"garbage phone", SignUpInput{Name: "Jordan", Email: "jordan@example.com", Phone: "not a phone", Password: "hunter2hunter2"}, "phone"},
	}
	for _, c := range cases {
		store := &stubAccountStore{}
		svc := &AccountService{AccountRepo: store}
		_, err := svc.SignUp(context.Background(), c.input)
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected ValidationError, got %v", c.name, err)
		}
		if vErr.Field != c.field {
			t.Fatalf("%s: expected field %q, got %q", c.name, c.field, vErr.Field)
		}
		if len(store.createdAccounts) != 0 {
			t.Fatalf("%s: expected no account created", c.name)
		}
	}
}
