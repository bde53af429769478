package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result, err := h.Service.SubmitReview(r.Context(), customerID(r), review)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			http.Error(w, vErr.Message, http.StatusBadRequest)
		case errors.Is(err, models.ErrAlreadyReviewed):
			http.Error(w, "Work order already reviewed", http.StatusConflict)
		case errors.Is(err, models.ErrWorkOrderNotFound):
			http.Error(w, "Work order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Work order belongs to another customer", http.StatusForbidden)
		default:
			log.Printf("CreateReview error: %v", err)
			http.Error(w, "Failed to create review", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

func (h *ReviewHandler) GetReviewsByCompanyID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "company_id")
	if id == "" {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}
	reviews, err := h.Service.ListByCompany(r.Context(), id)
	if err != nil {
		log.Printf("GetReviewsByCompanyID error: %v", err)
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviews)
}
