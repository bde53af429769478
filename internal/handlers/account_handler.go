package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type AccountHandler struct {
	Service *services.AccountService
}

func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input services.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	state, err := h.Service.SignUp(r.Context(), input)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			http.Error(w, vErr.Message, http.StatusBadRequest)
		case errors.Is(err, models.ErrDuplicateEmail):
			http.Error(w, "Email already registered", http.StatusConflict)
		default:
			log.Printf("SignUp error: %v", err)
			http.Error(w, "Failed to sign up", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(state)
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Printf("SignIn error: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SignOut(r.Context(), accountID(r)); err != nil {
		log.Printf("SignOut error: %v", err)
		http.Error(w, "Failed to sign out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Session resolves a refresh token to a typed session state. Missing or
// expired tokens come back as unauthenticated, not as an error.
func (h *AccountHandler) Session(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.ResolveSession(r.Context(), r.Header.Get("Refresh-Token"))
	if err != nil {
		log.Printf("Session error: %v", err)
		http.Error(w, "Failed to resolve session", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(state)
}

func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.VerifyEmail(r.Context(), accountID(r)); err != nil {
		log.Printf("VerifyEmail error: %v", err)
		http.Error(w, "Failed to verify email", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AccountHandler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetupPassword(r.Context(), accountID(r), input.Password); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Message, http.StatusBadRequest)
			return
		}
		log.Printf("SetupPassword error: %v", err)
		http.Error(w, "Failed to set password", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
