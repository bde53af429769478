package models

import "time"

type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	MessageText string     `json:"message_text"`
	RequestID   *string    `json:"request_id,omitempty"`
	WorkOrderID *string    `json:"work_order_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// Thread types.
const (
	ThreadTypeRequest = "request"
	ThreadTypeJob     = "job"
)

// MessageThread is one conversation, reconstructed client-side in the old
// portal and server-side here: messages grouped by their context key and
// sorted ascending by created_at.
type MessageThread struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ContextID   string    `json:"context_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Messages    []Message `json:"messages"`
	LastMessage *Message  `json:"last_message,omitempty"`
	Unread      int       `json:"unread"`
}
