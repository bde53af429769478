package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type MessageHandler struct {
	Service *services.MessageService
}

func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	msg.SenderID = accountID(r)

	created, err := h.Service.SendMessage(r.Context(), msg)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.Is(err, models.ErrMessageContext):
			http.Error(w, "Message must reference exactly one of request_id or work_order_id", http.StatusBadRequest)
		case errors.As(err, &vErr):
			http.Error(w, vErr.Message, http.StatusBadRequest)
		default:
			log.Printf("CreateMessage error: %v", err)
			http.Error(w, "Failed to send message", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetThreads returns the authenticated user's conversations, newest first.
func (h *MessageHandler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.Service.Threads(r.Context(), accountID(r))
	if err != nil {
		log.Printf("GetThreads error: %v", err)
		http.Error(w, "Failed to get threads", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(threads)
}

func (h *MessageHandler) GetMessagesForContext(w http.ResponseWriter, r *http.Request) {
	contextType := getParam(r, "type")
	contextID := getParam(r, "context_id")
	msgs, err := h.Service.MessagesForContext(r.Context(), accountID(r), contextType, contextID)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Message, http.StatusBadRequest)
			return
		}
		log.Printf("GetMessagesForContext error: %v", err)
		http.Error(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(msgs)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var input struct {
		MessageIDs []string `json:"message_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.MarkRead(r.Context(), accountID(r), input.MessageIDs); err != nil {
		log.Printf("MarkRead error: %v", err)
		http.Error(w, "Failed to mark messages read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
