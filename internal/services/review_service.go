package services

import (
	"context"
	"fmt"
	"strings"

	"portalBack/internal/models"
)

const maxReviewCommentLength = 1000

type reviewStore interface {
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Review, error)
}

type workOrderStore interface {
	GetByID(ctx context.Context, id string) (models.WorkOrder, error)
	GetByResponseID(ctx context.Context, responseID string) (models.WorkOrder, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.WorkOrder, error)
	SetReviewCompleted(ctx context.Context, workOrderID string) error
	UpdateStatus(ctx context.Context, workOrderID, fromStatus, toStatus string) error
}

type ReviewService struct {
	ReviewsRepo   reviewStore
	WorkOrderRepo workOrderStore
}

// SubmitReview validates and stores a customer review. The review succeeds
// even when the review_completed flag update fails; that failure comes back
// as a warning instead of being swallowed.
func (s *ReviewService) SubmitReview(ctx context.Context, customerID string, review models.Review) (models.ReviewResult, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return models.ReviewResult{}, &models.ValidationError{Field: "rating", Message: "Please select a rating between 1 and 5"}
	}
	if review.Comment != nil && len(strings.TrimSpace(*review.Comment)) > maxReviewCommentLength {
		return models.ReviewResult{}, &models.ValidationError{Field: "comment", Message: "Comment must be 1000 characters or fewer"}
	}

	wo, err := s.WorkOrderRepo.GetByID(ctx, review.WorkOrderID)
	if err != nil {
		return models.ReviewResult{}, err
	}
	if wo.CustomerID != customerID {
		return models.ReviewResult{}, models.ErrForbidden
	}

	review.CustomerID = customerID
	review.CompanyID = wo.CompanyID
	created, err := s.ReviewsRepo.CreateReview(ctx, review)
	if err != nil {
		return models.ReviewResult{}, err
	}

	result := models.ReviewResult{Review: created}
	if err := s.WorkOrderRepo.SetReviewCompleted(ctx, wo.ID); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("review saved but review_completed flag update failed: %v", err))
	}
	return result, nil
}

func (s *ReviewService) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	return s.ReviewsRepo.ListByCompany(ctx, companyID)
}
