package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type DeviceTokenRepository struct {
	DB *sql.DB
}

func (r *DeviceTokenRepository) Register(ctx context.Context, token models.DeviceToken) (models.DeviceToken, error) {
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO device_tokens (id, account_id, token, platform, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (token) DO UPDATE SET account_id = EXCLUDED.account_id`,
		token.ID, token.AccountID, token.Token, token.Platform, token.CreatedAt)
	if err != nil {
		return models.DeviceToken{}, err
	}
	return token, nil
}

func (r *DeviceTokenRepository) ListByAccount(ctx context.Context, accountID string) ([]models.DeviceToken, error) {
	return r.list(ctx, `
        SELECT id, account_id, token, platform, created_at
        FROM device_tokens WHERE account_id = $1`, accountID)
}

// ListByCustomer returns the tokens of every portal account belonging to
// the customer.
func (r *DeviceTokenRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.DeviceToken, error) {
	return r.list(ctx, `
        SELECT dt.id, dt.account_id, dt.token, dt.platform, dt.created_at
        FROM device_tokens dt
        JOIN customer_portal_accounts cpa ON cpa.id = dt.account_id
        WHERE cpa.customer_id = $1`, customerID)
}

func (r *DeviceTokenRepository) list(ctx context.Context, query, arg string) ([]models.DeviceToken, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.DeviceToken
	for rows.Next() {
		var t models.DeviceToken
		if err = rows.Scan(&t.ID, &t.AccountID, &t.Token, &t.Platform, &t.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
