package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type AccountRepository struct {
	DB *sql.DB
}

// CreateWithCustomer provisions the customer row and portal account together.
func (r *AccountRepository) CreateWithCustomer(ctx context.Context, customer models.Customer, account models.PortalAccount) (models.PortalAccount, models.Customer, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.PortalAccount{}, models.Customer{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now()
	customer.ID = uuid.NewString()
	customer.CreatedAt = now
	_, err = tx.ExecContext(ctx, `
        INSERT INTO customers (id, name, email, phone, address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address, customer.CreatedAt)
	if err != nil {
		return models.PortalAccount{}, models.Customer{}, err
	}

	account.ID = uuid.NewString()
	account.CustomerID = customer.ID
	account.CreatedAt = now
	_, err = tx.ExecContext(ctx, `
        INSERT INTO customer_portal_accounts
            (id, customer_id, email, password_hash, created_via, email_verified, needs_password_setup, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.CustomerID, account.Email, account.PasswordHash,
		account.CreatedVia, account.EmailVerified, account.NeedsPasswordSetup, account.CreatedAt)
	if err != nil {
		return models.PortalAccount{}, models.Customer{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.PortalAccount{}, models.Customer{}, err
	}
	return account, customer, nil
}

// EnsureCustomer finds a customer by email or creates one without a portal
// account. Guest request submissions use it.
func (r *AccountRepository) EnsureCustomer(ctx context.Context, name, email string) (models.Customer, error) {
	var customer models.Customer
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, name, email, phone, address, created_at
        FROM customers WHERE email = $1`, email).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, err
	}

	customer = models.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
	_, err = r.DB.ExecContext(ctx, `
        INSERT INTO customers (id, name, email, created_at)
        VALUES ($1, $2, $3, $4)`,
		customer.ID, customer.Name, customer.Email, customer.CreatedAt)
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (models.PortalAccount, error) {
	var acc models.PortalAccount
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, customer_id, email, password_hash, created_via, email_verified,
               needs_password_setup, last_login_at, created_at
        FROM customer_portal_accounts WHERE email = $1`, email).Scan(
		&acc.ID, &acc.CustomerID, &acc.Email, &acc.PasswordHash, &acc.CreatedVia,
		&acc.EmailVerified, &acc.NeedsPasswordSetup, &acc.LastLoginAt, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PortalAccount{}, models.ErrNoRecord
	}
	return acc, err
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (models.PortalAccount, error) {
	var acc models.PortalAccount
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, customer_id, email, password_hash, created_via, email_verified,
               needs_password_setup, last_login_at, created_at
        FROM customer_portal_accounts WHERE id = $1`, id).Scan(
		&acc.ID, &acc.CustomerID, &acc.Email, &acc.PasswordHash, &acc.CreatedVia,
		&acc.EmailVerified, &acc.NeedsPasswordSetup, &acc.LastLoginAt, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PortalAccount{}, models.ErrNoRecord
	}
	return acc, err
}

func (r *AccountRepository) GetCustomerByID(ctx context.Context, id string) (models.Customer, error) {
	var customer models.Customer
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, name, email, phone, address, created_at
        FROM customers WHERE id = $1`, id).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, models.ErrCustomerNotFound
	}
	return customer, err
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, accountID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE customer_portal_accounts SET last_login_at = $1 WHERE id = $2`,
		time.Now(), accountID)
	return err
}

func (r *AccountRepository) SetPassword(ctx context.Context, accountID, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
        UPDATE customer_portal_accounts
        SET password_hash = $1, needs_password_setup = false WHERE id = $2`,
		passwordHash, accountID)
	return err
}

func (r *AccountRepository) MarkVerified(ctx context.Context, accountID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE customer_portal_accounts SET email_verified = true WHERE id = $1`, accountID)
	return err
}

func (r *AccountRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	session.ID = uuid.NewString()
	session.CreatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO sessions (id, account_id, refresh_token, role, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.AccountID, session.RefreshToken, session.Role,
		session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *AccountRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, account_id, refresh_token, role, expires_at, created_at
        FROM sessions WHERE refresh_token = $1`, refreshToken).Scan(
		&session.ID, &session.AccountID, &session.RefreshToken, &session.Role,
		&session.ExpiresAt, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrSessionNotFound
	}
	return session, err
}

func (r *AccountRepository) DeleteSessionsForAccount(ctx context.Context, accountID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE account_id = $1`, accountID)
	return err
}
