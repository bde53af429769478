package services

import (
	"context"
	"sort"

	"portalBack/internal/models"
)

type messageStore interface {
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	ListByUser(ctx context.Context, userID string) ([]models.Message, error)
	ListByContext(ctx context.Context, userID, contextType, contextID string) ([]models.Message, error)
	MarkRead(ctx context.Context, userID string, messageIDs []string) error
}

type threadTitleSource interface {
	GetByID(ctx context.Context, id string) (models.MarketplaceRequest, error)
}

// messagePusher delivers a stored message to connected clients. Delivery is
// best-effort; the insert is the source of truth.
type messagePusher interface {
	Push(msg models.Message)
}

type messageNotifier interface {
	NewMessage(ctx context.Context, msg models.Message) error
}

type MessageService struct {
	MessageRepo   messageStore
	RequestRepo   threadTitleSource
	WorkOrderRepo workOrderStore
	Pusher        messagePusher
	Notifier      messageNotifier
}

// SendMessage stores one message scoped by exactly one of request or work
// order, then pushes it to the recipient's live connection if any.
func (s *MessageService) SendMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if (msg.RequestID == nil) == (msg.WorkOrderID == nil) {
		return models.Message{}, models.ErrMessageContext
	}
	if msg.MessageText == "" {
		return models.Message{}, &models.ValidationError{Field: "message_text", Message: "Message text is required"}
	}

	created, err := s.MessageRepo.CreateMessage(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}
	if s.Pusher != nil {
		s.Pusher.Push(created)
	}
	if s.Notifier != nil {
		// Push notification failures don't undo the stored message.
		_ = s.Notifier.NewMessage(ctx, created)
	}
	return created, nil
}

// Threads rebuilds the user's conversations: every message the user sent or
// received, grouped by context key, each group sorted ascending by
// created_at with lastMessage as the final element.
func (s *MessageService) Threads(ctx context.Context, userID string) ([]models.MessageThread, error) {
	msgs, err := s.MessageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := map[string]*models.MessageThread{}
	var order []string
	for _, msg := range msgs {
		var key, threadType, contextID string
		switch {
		case msg.RequestID != nil:
			threadType, contextID = models.ThreadTypeRequest, *msg.RequestID
			key = "request_" + contextID
		case msg.WorkOrderID != nil:
			threadType, contextID = models.ThreadTypeJob, *msg.WorkOrderID
			key = "job_" + contextID
		default:
			continue
		}

		thread, ok := grouped[key]
		if !ok {
			thread = &models.MessageThread{
				ID:        key,
				Type:      threadType,
				ContextID: contextID,
				Title:     s.threadTitle(ctx, threadType, contextID),
			}
			grouped[key] = thread
			order = append(order, key)
		}
		thread.Messages = append(thread.Messages, msg)
		if msg.ReadAt == nil && msg.RecipientID == userID {
			thread.Unread++
		}
	}

	threads := make([]models.MessageThread, 0, len(order))
	for _, key := range order {
		thread := grouped[key]
		sort.SliceStable(thread.Messages, func(i, j int) bool {
			return thread.Messages[i].CreatedAt.Before(thread.Messages[j].CreatedAt)
		})
		last := thread.Messages[len(thread.Messages)-1]
		thread.LastMessage = &last
		threads = append(threads, *thread)
	}

	// Newest conversation first.
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastMessage.CreatedAt.After(threads[j].LastMessage.CreatedAt)
	})
	return threads, nil
}

// threadTitle is display sugar; lookups that fail fall back to a truncated id.
func (s *MessageService) threadTitle(ctx context.Context, threadType, contextID string) string {
	switch threadType {
	case models.ThreadTypeRequest:
		if s.RequestRepo != nil {
			if req, err := s.RequestRepo.GetByID(ctx, contextID); err == nil && req.Title != "" {
				return req.Title
			}
		}
		return "Request #" + shortID(contextID)
	default:
		if s.WorkOrderRepo != nil {
			if wo, err := s.WorkOrderRepo.GetByID(ctx, contextID); err == nil && wo.ID != "" {
				return "Job #" + shortID(wo.ID)
			}
		}
		return "Job #" + shortID(contextID)
	}
}

func (s *MessageService) MessagesForContext(ctx context.Context, userID, contextType, contextID string) ([]models.Message, error) {
	if contextType != models.ThreadTypeRequest && contextType != models.ThreadTypeJob {
		return nil, &models.ValidationError{Field: "context", Message: "Context must be request or job"}
	}
	return s.MessageRepo.ListByContext(ctx, userID, contextType, contextID)
}

func (s *MessageService) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	return s.MessageRepo.MarkRead(ctx, userID, messageIDs)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
