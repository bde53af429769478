package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/fsm"
	"portalBack/internal/models"
)

type MarketplaceResponseRepository struct {
	DB *sql.DB
}

// CreateResponse inserts a company response in one transaction. The request
// row is locked so the response cap holds under concurrent submissions:
// once the non-declined response count reaches max_responses, further
// responses are rejected.
func (r *MarketplaceResponseRepository) CreateResponse(ctx context.Context, resp models.MarketplaceResponse) (models.MarketplaceResponse, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.MarketplaceResponse{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var maxResponses sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT max_responses FROM marketplace_requests WHERE id = $1 FOR UPDATE`,
		resp.RequestID).Scan(&maxResponses)
	if errors.Is(err, sql.ErrNoRows) {
		err = models.ErrNoRecord
		return models.MarketplaceResponse{}, err
	}
	if err != nil {
		return models.MarketplaceResponse{}, err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM marketplace_responses WHERE company_id = $1 AND request_id = $2`,
		resp.CompanyID, resp.RequestID).Scan(&count)
	if err != nil {
		return models.MarketplaceResponse{}, err
	}
	if count > 0 {
		err = models.ErrAlreadyResponded
		return models.MarketplaceResponse{}, err
	}

	if maxResponses.Valid && maxResponses.Int64 > 0 {
		var active int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM marketplace_responses WHERE request_id = $1 AND response_status <> $2`,
			resp.RequestID, models.ResponseDeclined).Scan(&active)
		if err != nil {
			return models.MarketplaceResponse{}, err
		}
		if int64(active) >= maxResponses.Int64 {
			err = models.ErrResponseLimit
			return models.MarketplaceResponse{}, err
		}
	}

	resp.ID = uuid.NewString()
	resp.CreatedAt = time.Now()
	if resp.ResponseStatus == "" {
		resp.ResponseStatus = models.ResponseInterested
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO marketplace_responses
            (id, request_id, company_id, response_status, proposed_rate, counter_offer,
             available_start, available_end, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		resp.ID, resp.RequestID, resp.CompanyID, resp.ResponseStatus, resp.ProposedRate,
		resp.CounterOffer, resp.AvailableStart, resp.AvailableEnd, resp.Message, resp.CreatedAt)
	if err != nil {
		return models.MarketplaceResponse{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.MarketplaceResponse{}, err
	}
	return resp, nil
}

// GetByID loads a response joined with its request and company.
func (r *MarketplaceResponseRepository) GetByID(ctx context.Context, id string) (models.MarketplaceResponse, error) {
	var resp models.MarketplaceResponse
	var req models.MarketplaceRequest
	var comp models.Company
	err := r.DB.QueryRowContext(ctx, `
        SELECT mr.id, mr.request_id, mr.company_id, mr.response_status, mr.proposed_rate,
               mr.counter_offer, mr.available_start, mr.available_end, mr.message, mr.created_at,
               q.id, q.customer_id, q.title, q.description, q.pricing_preference, q.status,
               c.id, c.name, c.email, c.phone, c.avg_rating, c.rating_count
        FROM marketplace_responses mr
        JOIN marketplace_requests q ON q.id = mr.request_id
        JOIN companies c ON c.id = mr.company_id
        WHERE mr.id = $1`, id).Scan(
		&resp.ID, &resp.RequestID, &resp.CompanyID, &resp.ResponseStatus, &resp.ProposedRate,
		&resp.CounterOffer, &resp.AvailableStart, &resp.AvailableEnd, &resp.Message, &resp.CreatedAt,
		&req.ID, &req.CustomerID, &req.Title, &req.Description, &req.PricingPreference, &req.Status,
		&comp.ID, &comp.Name, &comp.Email, &comp.Phone, &comp.AvgRating, &comp.RatingCount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MarketplaceResponse{}, models.ErrNoRecord
	}
	if err != nil {
		return models.MarketplaceResponse{}, err
	}
	resp.Request = &req
	resp.Company = &comp
	return resp, nil
}

func (r *MarketplaceResponseRepository) ListByRequest(ctx context.Context, requestID string) ([]models.MarketplaceResponse, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT mr.id, mr.request_id, mr.company_id, mr.response_status, mr.proposed_rate,
               mr.counter_offer, mr.available_start, mr.available_end, mr.message, mr.created_at,
               c.id, c.name, c.email, c.phone, c.avg_rating, c.rating_count, c.company_logo_url
        FROM marketplace_responses mr
        JOIN companies c ON c.id = mr.company_id
        WHERE mr.request_id = $1
        ORDER BY mr.created_at DESC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resps []models.MarketplaceResponse
	for rows.Next() {
		var resp models.MarketplaceResponse
		var comp models.Company
		err = rows.Scan(
			&resp.ID, &resp.RequestID, &resp.CompanyID, &resp.ResponseStatus, &resp.ProposedRate,
			&resp.CounterOffer, &resp.AvailableStart, &resp.AvailableEnd, &resp.Message, &resp.CreatedAt,
			&comp.ID, &comp.Name, &comp.Email, &comp.Phone, &comp.AvgRating, &comp.RatingCount,
			&comp.CompanyLogoURL)
		if err != nil {
			return nil, err
		}
		resp.Company = &comp
		resps = append(resps, resp)
	}
	return resps, rows.Err()
}

// Accept performs the whole acceptance in one transaction: a conditional
// status swap on the response, rejection of sibling responses, booking of
// the request, and creation of the work order. A swap that matches no row
// because the response is already ACCEPTED returns the existing work order
// with AlreadyApplied set.
func (r *MarketplaceResponseRepository) Accept(ctx context.Context, resp models.MarketplaceResponse) (models.WorkOrder, bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.WorkOrder{}, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = fsm.ApplyResponse(ctx, tx, resp.ID, models.ResponseAccepted,
		models.ResponseInterested, models.ResponseOffered)
	if errors.Is(err, sql.ErrNoRows) {
		// No matching row: either already accepted (idempotent success) or
		// in a terminal state that cannot be accepted.
		var status string
		if scanErr := tx.QueryRowContext(ctx,
			`SELECT response_status FROM marketplace_responses WHERE id = $1`, resp.ID).Scan(&status); scanErr != nil {
			err = scanErr
			return models.WorkOrder{}, false, err
		}
		if status != models.ResponseAccepted {
			err = models.ErrInvalidTransition
			return models.WorkOrder{}, false, err
		}
		var wo models.WorkOrder
		wo, err = workOrderByResponseTx(ctx, tx, resp.ID)
		if err != nil {
			return models.WorkOrder{}, false, err
		}
		err = tx.Commit()
		return wo, true, err
	}
	if err != nil {
		return models.WorkOrder{}, false, err
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE marketplace_responses SET response_status = $1
        WHERE request_id = $2 AND id <> $3 AND response_status IN ($4, $5)`,
		models.ResponseRejected, resp.RequestID, resp.ID,
		models.ResponseInterested, models.ResponseOffered)
	if err != nil {
		return models.WorkOrder{}, false, err
	}

	if err = fsm.ApplyRequest(ctx, tx, resp.RequestID, "available", "booked"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = models.ErrInvalidTransition
		}
		return models.WorkOrder{}, false, err
	}

	wo := models.WorkOrder{
		ID:                    uuid.NewString(),
		CustomerID:            resp.Request.CustomerID,
		CompanyID:             resp.CompanyID,
		MarketplaceRequestID:  resp.RequestID,
		MarketplaceResponseID: resp.ID,
		Status:                models.WorkOrderScheduled,
		CreatedAt:             time.Now(),
	}
	if resp.ProposedRate != nil {
		wo.TotalAmount = *resp.ProposedRate
	}
	_, err = tx.ExecContext(ctx, `
        INSERT INTO work_orders
            (id, customer_id, company_id, marketplace_request_id, marketplace_response_id,
             status, total_amount, review_completed, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)`,
		wo.ID, wo.CustomerID, wo.CompanyID, wo.MarketplaceRequestID, wo.MarketplaceResponseID,
		wo.Status, wo.TotalAmount, wo.CreatedAt)
	if err != nil {
		return models.WorkOrder{}, false, err
	}

	if err = tx.Commit(); err != nil {
		return models.WorkOrder{}, false, err
	}
	return wo, false, nil
}

// Decline swaps the response to declined. Declining twice is a no-op
// success; declining an accepted response is rejected.
func (r *MarketplaceResponseRepository) Decline(ctx context.Context, responseID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = fsm.ApplyResponse(ctx, tx, responseID, models.ResponseDeclined,
		models.ResponseInterested, models.ResponseOffered)
	if errors.Is(err, sql.ErrNoRows) {
		var status string
		if scanErr := tx.QueryRowContext(ctx,
			`SELECT response_status FROM marketplace_responses WHERE id = $1`, responseID).Scan(&status); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				err = models.ErrNoRecord
			} else {
				err = scanErr
			}
			return err
		}
		if status == models.ResponseDeclined {
			err = tx.Commit()
			return err
		}
		err = models.ErrInvalidTransition
		return err
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func workOrderByResponseTx(ctx context.Context, tx *sql.Tx, responseID string) (models.WorkOrder, error) {
	var wo models.WorkOrder
	err := tx.QueryRowContext(ctx, `
        SELECT id, customer_id, company_id, marketplace_request_id, marketplace_response_id,
               status, total_amount, review_completed, created_at
        FROM work_orders WHERE marketplace_response_id = $1`, responseID).Scan(
		&wo.ID, &wo.CustomerID, &wo.CompanyID, &wo.MarketplaceRequestID, &wo.MarketplaceResponseID,
		&wo.Status, &wo.TotalAmount, &wo.ReviewCompleted, &wo.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WorkOrder{}, models.ErrWorkOrderNotFound
	}
	return wo, err
}
