package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type DeviceTokenHandler struct {
	Service *services.NotificationService
}

// RegisterToken stores an FCM device token for the authenticated account.
func (h *DeviceTokenHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var token models.DeviceToken
	if err := json.NewDecoder(r.Body).Decode(&token); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if token.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}
	token.AccountID = accountID(r)

	registered, err := h.Service.RegisterToken(r.Context(), token)
	if err != nil {
		log.Printf("RegisterToken error: %v", err)
		http.Error(w, "Failed to register token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(registered)
}
