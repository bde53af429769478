package repositories

import (
	"context"
	"database/sql"
	"errors"

	"portalBack/internal/models"
)

type WorkOrderRepository struct {
	DB *sql.DB
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (models.WorkOrder, error) {
	var wo models.WorkOrder
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, customer_id, company_id, marketplace_request_id, marketplace_response_id,
               status, total_amount, review_completed, created_at
        FROM work_orders WHERE id = $1`, id).Scan(
		&wo.ID, &wo.CustomerID, &wo.CompanyID, &wo.MarketplaceRequestID, &wo.MarketplaceResponseID,
		&wo.Status, &wo.TotalAmount, &wo.ReviewCompleted, &wo.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WorkOrder{}, models.ErrWorkOrderNotFound
	}
	return wo, err
}

func (r *WorkOrderRepository) GetByResponseID(ctx context.Context, responseID string) (models.WorkOrder, error) {
	var wo models.WorkOrder
	err := r.DB.QueryRowContext(ctx, `
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

func (r *WorkOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.WorkOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT w.id, w.customer_id, w.company_id, w.marketplace_request_id, w.marketplace_response_id,
               w.status, w.total_amount, w.review_completed, w.created_at,
               c.id, c.name, c.email, c.phone, c.avg_rating, c.rating_count
        FROM work_orders w
        JOIN companies c ON c.id = w.company_id
        WHERE w.customer_id = $1 ORDER BY w.created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.WorkOrder
	for rows.Next() {
		var wo models.WorkOrder
		var comp models.Company
		err = rows.Scan(
			&wo.ID, &wo.CustomerID, &wo.CompanyID, &wo.MarketplaceRequestID, &wo.MarketplaceResponseID,
			&wo.Status, &wo.TotalAmount, &wo.ReviewCompleted, &wo.CreatedAt,
			&comp.ID, &comp.Name, &comp.Email, &comp.Phone, &comp.AvgRating, &comp.RatingCount)
		if err != nil {
			return nil, err
		}
		wo.Company = &comp
		orders = append(orders, wo)
	}
	return orders, rows.Err()
}

// SetReviewCompleted flips the review flag. Callers treat a failure here as
// a warning, not a failed review.
func (r *WorkOrderRepository) SetReviewCompleted(ctx context.Context, workOrderID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE work_orders SET review_completed = true WHERE id = $1`, workOrderID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrWorkOrderNotFound
	}
	return nil
}

func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, workOrderID, fromStatus, toStatus string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE work_orders SET status = $1 WHERE id = $2 AND status = $3`,
		toStatus, workOrderID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}
