package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type MarketplaceRequestRepository struct {
	DB *sql.DB
}

// CreateWithTags inserts the request and its tag links in one transaction so
// a failed link insert can never leave an orphaned request behind.
func (r *MarketplaceRequestRepository) CreateWithTags(ctx context.Context, req models.MarketplaceRequest, tagIDs []string) (models.MarketplaceRequest, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.MarketplaceRequest{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	if req.Status == "" {
		req.Status = "available"
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO marketplace_requests
            (id, customer_id, company_id, title, description, request_type, service_mode,
             pricing_preference, flat_rate, hourly_rate, max_responses, requires_inspection,
             preferred_time_option, start_time, end_time, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		req.ID, req.CustomerID, req.CompanyID, req.Title, req.Description, req.RequestType,
		req.ServiceMode, req.PricingPreference, req.FlatRate, req.HourlyRate, req.MaxResponses,
		req.RequiresInspection, req.PreferredTimeOption, req.StartTime, req.EndTime, req.Status,
		req.CreatedAt)
	if err != nil {
		return models.MarketplaceRequest{}, err
	}

	for _, tagID := range tagIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO request_tags (request_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			req.ID, tagID)
		if err != nil {
			return models.MarketplaceRequest{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return models.MarketplaceRequest{}, err
	}
	return req, nil
}

func (r *MarketplaceRequestRepository) GetByID(ctx context.Context, id string) (models.MarketplaceRequest, error) {
	var req models.MarketplaceRequest
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, customer_id, company_id, title, description, request_type, service_mode,
               pricing_preference, flat_rate, hourly_rate, max_responses, requires_inspection,
               preferred_time_option, start_time, end_time, status, created_at
        FROM marketplace_requests WHERE id = $1`, id).Scan(
		&req.ID, &req.CustomerID, &req.CompanyID, &req.Title, &req.Description, &req.RequestType,
		&req.ServiceMode, &req.PricingPreference, &req.FlatRate, &req.HourlyRate, &req.MaxResponses,
		&req.RequiresInspection, &req.PreferredTimeOption, &req.StartTime, &req.EndTime,
		&req.Status, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MarketplaceRequest{}, models.ErrNoRecord
	}
	if err != nil {
		return models.MarketplaceRequest{}, err
	}
	req.Tags, err = r.tagsForRequest(ctx, req.ID)
	return req, err
}

func (r *MarketplaceRequestRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.MarketplaceRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, customer_id, company_id, title, description, request_type, service_mode,
               pricing_preference, flat_rate, hourly_rate, max_responses, requires_inspection,
               preferred_time_option, start_time, end_time, status, created_at
        FROM marketplace_requests WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []models.MarketplaceRequest
	for rows.Next() {
		var req models.MarketplaceRequest
		err = rows.Scan(
			&req.ID, &req.CustomerID, &req.CompanyID, &req.Title, &req.Description, &req.RequestType,
			&req.ServiceMode, &req.PricingPreference, &req.FlatRate, &req.HourlyRate, &req.MaxResponses,
			&req.RequiresInspection, &req.PreferredTimeOption, &req.StartTime, &req.EndTime,
			&req.Status, &req.CreatedAt)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].Tags, err = r.tagsForRequest(ctx, reqs[i].ID); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

// ListAvailable lists open requests for contractor browsing, newest first.
func (r *MarketplaceRequestRepository) ListAvailable(ctx context.Context, excludeCompanyID string) ([]models.MarketplaceRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, customer_id, company_id, title, description, request_type, service_mode,
               pricing_preference, flat_rate, hourly_rate, max_responses, requires_inspection,
               preferred_time_option, start_time, end_time, status, created_at
        FROM marketplace_requests
        WHERE status = 'available' AND (company_id IS NULL OR company_id <> $1)
        ORDER BY created_at DESC`, excludeCompanyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []models.MarketplaceRequest
	for rows.Next() {
		var req models.MarketplaceRequest
		err = rows.Scan(
			&req.ID, &req.CustomerID, &req.CompanyID, &req.Title, &req.Description, &req.RequestType,
			&req.ServiceMode, &req.PricingPreference, &req.FlatRate, &req.HourlyRate, &req.MaxResponses,
			&req.RequiresInspection, &req.PreferredTimeOption, &req.StartTime, &req.EndTime,
			&req.Status, &req.CreatedAt)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].Tags, err = r.tagsForRequest(ctx, reqs[i].ID); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

func (r *MarketplaceRequestRepository) tagsForRequest(ctx context.Context, requestID string) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT t.id, t.name FROM tags t
        JOIN request_tags rt ON rt.tag_id = t.id
        WHERE rt.request_id = $1 ORDER BY t.name`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err = rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *MarketplaceRequestRepository) Cancel(ctx context.Context, requestID, customerID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE marketplace_requests SET status = 'cancelled' WHERE id = $1 AND customer_id = $2 AND status = 'available'`,
		requestID, customerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNoRecord
	}
	return nil
}
