package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type MarketplaceRequestHandler struct {
	Service *services.MarketplaceService
}

func (h *MarketplaceRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !input.Guest {
		input.CustomerID = customerID(r)
	}

	req, warnings, err := h.Service.SubmitRequest(r.Context(), input)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Message, http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrUnauthorized) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		log.Printf("CreateRequest error: %v", err)
		http.Error(w, "Failed to create request", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(struct {
		Request  models.MarketplaceRequest `json:"request"`
		Warnings []string                  `json:"warnings,omitempty"`
	}{req, warnings})
}

func (h *MarketplaceRequestHandler) GetRequestByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	req, err := h.Service.GetRequest(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		log.Printf("GetRequestByID error: %v", err)
		http.Error(w, "Failed to get request", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(req)
}

func (h *MarketplaceRequestHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Service.ListRequestsByCustomer(r.Context(), customerID(r))
	if err != nil {
		log.Printf("GetMyRequests error: %v", err)
		http.Error(w, "Failed to get requests", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reqs)
}

// BrowseRequests lists open requests with optional filters from the query
// string: tags, pricing and request_type, each repeatable.
func (h *MarketplaceRequestHandler) BrowseRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reqs, err := h.Service.BrowseRequests(r.Context(), q.Get("exclude_company"),
		q["tags"], q["pricing"], q["request_type"])
	if err != nil {
		log.Printf("BrowseRequests error: %v", err)
		http.Error(w, "Failed to browse requests", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reqs)
}

func (h *MarketplaceRequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.CancelRequest(r.Context(), id, customerID(r)); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, "Request not found or not cancellable", http.StatusNotFound)
			return
		}
		log.Printf("CancelRequest error: %v", err)
		http.Error(w, "Failed to cancel request", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MarketplaceRequestHandler) GetAllTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Service.GetAllTags(r.Context())
	if err != nil {
		log.Printf("GetAllTags error: %v", err)
		http.Error(w, "Failed to get tags", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(tags)
}
