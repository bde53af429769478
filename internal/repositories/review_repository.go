package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the review and recomputes the company rating in one
// transaction. One review per work order.
func (r *ReviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM marketplace_reviews WHERE work_order_id = $1`,
		review.WorkOrderID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	review.ID = uuid.NewString()
	review.CreatedAt = time.Now()
	if review.ReviewTarget == "" {
		review.ReviewTarget = "company"
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO marketplace_reviews
            (id, customer_id, company_id, work_order_id, rating, comment, review_target, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		review.ID, review.CustomerID, review.CompanyID, review.WorkOrderID,
		review.Rating, review.Comment, review.ReviewTarget, review.CreatedAt)
	if err != nil {
		return models.Review{}, err
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE companies SET
            avg_rating = (SELECT AVG(rating) FROM marketplace_reviews WHERE company_id = $1),
            rating_count = (SELECT COUNT(*) FROM marketplace_reviews WHERE company_id = $1)
        WHERE id = $1`, review.CompanyID)
	if err != nil {
		return models.Review{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, customer_id, company_id, work_order_id, rating, comment, review_target, created_at
        FROM marketplace_reviews WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err = rows.Scan(&review.ID, &review.CustomerID, &review.CompanyID, &review.WorkOrderID,
			&review.Rating, &review.Comment, &review.ReviewTarget, &review.CreatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
