package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type MarketplaceResponseHandler struct {
	Service *services.MarketplaceService
}

func (h *MarketplaceResponseHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var resp models.MarketplaceResponse
	if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, warnings, err := h.Service.SubmitResponse(r.Context(), resp)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyResponded) {
			http.Error(w, "Company already responded to this request", http.StatusConflict)
			return
		}
		if errors.Is(err, models.ErrResponseLimit) {
			http.Error(w, "Request is no longer accepting responses", http.StatusConflict)
			return
		}
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		log.Printf("CreateResponse error: %v", err)
		http.Error(w, "Failed to create response", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(struct {
		Response models.MarketplaceResponse `json:"response"`
		Warnings []string                   `json:"warnings,omitempty"`
	}{created, warnings})
}

// AcceptResponse books the request: the response moves to ACCEPTED, its
// siblings are rejected and a work order is created, all in one transaction.
// Repeating the call returns the existing work order.
func (h *MarketplaceResponseHandler) AcceptResponse(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid response ID", http.StatusBadRequest)
		return
	}
	result, err := h.Service.Accept(r.Context(), id, customerID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoRecord):
			http.Error(w, "Response not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Response belongs to another customer", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidTransition):
			http.Error(w, "Response can no longer be accepted", http.StatusConflict)
		default:
			log.Printf("AcceptResponse error: %v", err)
			http.Error(w, "Failed to accept response", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *MarketplaceResponseHandler) DeclineResponse(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid response ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Decline(r.Context(), id, customerID(r)); err != nil {
		switch {
		case errors.Is(err, models.ErrNoRecord):
			http.Error(w, "Response not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Response belongs to another customer", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidTransition):
			http.Error(w, "Accepted responses cannot be declined", http.StatusConflict)
		default:
			log.Printf("DeclineResponse error: %v", err)
			http.Error(w, "Failed to decline response", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
