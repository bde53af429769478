package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portalBack/internal/models"
)

type stubWorkOrderStore struct {
	orders        map[string]models.WorkOrder
	flagged       []string
	flagErr       error
	statusUpdates []string
}

func (s *stubWorkOrderStore) GetByID(ctx context.Context, id string) (models.WorkOrder, error) {
	wo, ok := s.orders[id]
	if !ok {
		return models.WorkOrder{}, models.ErrWorkOrderNotFound
	}
	return wo, nil
}

func (s *stubWorkOrderStore) GetByResponseID(ctx context.Context, responseID string) (models.WorkOrder, error) {
	return models.WorkOrder{}, models.ErrWorkOrderNotFound
}

func (s *stubWorkOrderStore) ListByCustomer(ctx context.Context, customerID string) ([]models.WorkOrder, error) {
	return nil, nil
}

func (s *stubWorkOrderStore) SetReviewCompleted(ctx context.Context, workOrderID string) error {
	if s.flagErr != nil {
		return s.flagErr
	}
	s.flagged = append(s.flagged, workOrderID)
	return nil
}

func (s *stubWorkOrderStore) UpdateStatus(ctx context.Context, workOrderID, fromStatus, toStatus string) error {
	s.statusUpdates = append(s.statusUpdates, workOrderID+":"+fromStatus+">"+toStatus)
	return nil
}

type stubReviewStore struct {
	created []models.Review
	err     error
}

func (s *stubReviewStore) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	if s.err != nil {
		return models.Review{}, s.err
	}
	review.ID = "rev-1"
	s.created = append(s.created, review)
	return review, nil
}

func (s *stubReviewStore) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	return nil, nil
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	reviews := &stubReviewStore{}
	orders := &stubWorkOrderStore{orders: map[string]models.WorkOrder{
		"wo-1": {ID: "wo-1", CustomerID: "C1", CompanyID: "comp-1"},
	}}
	svc := &ReviewService{ReviewsRepo: reviews, WorkOrderRepo: orders}

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.SubmitReview(context.Background(), "C1", models.Review{WorkOrderID: "wo-1", Rating: rating})
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "rating" {
			t.Fatalf("rating %d: expected rating validation error, got %v", rating, err)
		}
	}
	if len(reviews.created) != 0 {
		t.Fatal("expected no review stored for invalid ratings")
	}

	for rating := 1; rating <= 5; rating++ {
		result, err := svc.SubmitReview(context.Background(), "C1", models.Review{WorkOrderID: "wo-1", Rating: rating})
		if err != nil {
			t.Fatalf("rating %d: %v", rating, err)
		}
		if result.Review.CompanyID != "comp-1" {
			t.Fatalf("rating %d: company not resolved from work order", rating)
		}
	}
}

func TestSubmitReviewCommentTooLong(t *testing.T) {
	orders := &stubWorkOrderStore{orders: map[string]models.WorkOrder{
		"wo-1": {ID: "wo-1", CustomerID: "C1"},
	}}
	svc := &ReviewService{ReviewsRepo: &stubReviewStore{}, WorkOrderRepo: orders}

	comment := strings.Repeat("x", maxReviewCommentLength+1)
	_, err := svc.SubmitReview(context.Background(), "C1", models.Review{WorkOrderID: "wo-1", Rating: 4, Comment: &comment})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "comment" {
		t.Fatalf("expected comment validation error, got %v", err)
	}
}

func TestSubmitReviewForbidden(t *testing.T) {
	orders := &stubWorkOrderStore{orders: map[string]models.WorkOrder{
		"wo-1": {ID: "wo-1", CustomerID: "C1"},
	}}
	svc := &ReviewService{ReviewsRepo: &stubReviewStore{}, WorkOrderRepo: orders}

	_, err := svc.SubmitReview(context.Background(), "C2", models.Review{WorkOrderID: "wo-1", Rating: 5})
	if err != models.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSubmitReviewFlagFailureBecomesWarning(t *testing.T) {
	orders := &stubWorkOrderStore{
		orders:  map[string]models.WorkOrder{"wo-1": {ID: "wo-1", CustomerID: "C1", CompanyID: "comp-1"}},
		flagErr: errors.New("connection reset"),
	}
	svc := &ReviewService{ReviewsRepo: &stubReviewStore{}, WorkOrderRepo: orders}

	result, err := svc.SubmitReview(context.Background(), "C1", models.Review{WorkOrderID: "wo-1", Rating: 5})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if result.Review.ID == "" {
		t.Fatal("review should still be stored")
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
}
