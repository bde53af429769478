package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"portalBack/internal/models"
)

type stubMessageStore struct {
	messages []models.Message
	read     []string
}

func (s *stubMessageStore) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.ID = "msg-new"
	msg.CreatedAt = time.Now()
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *stubMessageStore) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	return s.messages, nil
}

func (s *stubMessageStore) ListByContext(ctx context.Context, userID, contextType, contextID string) ([]models.Message, error) {
	return s.messages, nil
}

func (s *stubMessageStore) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	s.read = append(s.read, messageIDs...)
	return nil
}

type stubPusher struct {
	pushed []models.Message
}

func (s *stubPusher) Push(msg models.Message) { s.pushed = append(s.pushed, msg) }

func strPtr(v string) *string { return &v }

func TestSendMessageRequiresExactlyOneContext(t *testing.T) {
	store := &stubMessageStore{}
	svc := &MessageService{MessageRepo: store}

	_, err := svc.SendMessage(context.Background(), models.Message{
		SenderID: "a", RecipientID: "b", MessageText: "hi",
	})
	if err != models.ErrMessageContext {
		t.Fatalf("no context: expected ErrMessageContext, got %v", err)
	}

	_, err = svc.SendMessage(context.Background(), models.Message{
		SenderID: "a", RecipientID: "b", MessageText: "hi",
		RequestID: strPtr("Q1"), WorkOrderID: strPtr("wo-1"),
	})
	if err != models.ErrMessageContext {
		t.Fatalf("both contexts: expected ErrMessageContext, got %v", err)
	}
	if len(store.messages) != 0 {
		t.Fatal("nothing should be stored when context is ambiguous")
	}
}

func TestSendMessageEmptyText(t *testing.T) {
	svc := &MessageService{MessageRepo: &stubMessageStore{}}
	_, err := svc.SendMessage(context.Background(), models.Message{
		SenderID: "a", RecipientID: "b", RequestID: strPtr("Q1"),
	})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendMessagePushesToLiveConnection(t *testing.T) {
	pusher := &stubPusher{}
	svc := &MessageService{MessageRepo: &stubMessageStore{}, Pusher: pusher}

	created, err := svc.SendMessage(context.Background(), models.Message{
		SenderID: "a", RecipientID: "b", MessageText: "hi", RequestID: strPtr("Q1"),
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(pusher.pushed) != 1 || pusher.pushed[0].ID != created.ID {
		t.Fatalf("expected stored message pushed, got %v", pusher.pushed)
	}
}

func TestThreadsGroupingAndOrdering(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	store := &stubMessageStore{messages: []models.Message{
		{ID: "m3", SenderID: "me", RecipientID: "comp", MessageText: "third", RequestID: strPtr("Q1"), CreatedAt: at(30)},
		{ID: "m1", SenderID: "comp", RecipientID: "me", MessageText: "first", RequestID: strPtr("Q1"), CreatedAt: at(10)},
		{ID: "j1", SenderID: "comp", RecipientID: "me", MessageText: "job msg", WorkOrderID: strPtr("W1"), CreatedAt: at(20)},
		{ID: "m2", SenderID: "comp", RecipientID: "me", MessageText: "second", RequestID: strPtr("Q1"), CreatedAt: at(15)},
	}}
	svc := &MessageService{MessageRepo: store}

	threads, err := svc.Threads(context.Background(), "me")
	if err != nil {
		t.Fatalf("Threads: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}

	// Thread with the newest last message comes first.
	first := threads[0]
	if first.Type != models.ThreadTypeRequest || first.ContextID != "Q1" {
		t.Fatalf("expected request thread Q1 first, got %+v", first)
	}
	if len(first.Messages) != 3 {
		t.Fatalf("expected 3 messages in Q1 thread, got %d", len(first.Messages))
	}
	for i, want := range []string{"m1", "m2", "m3"} {
		if first.Messages[i].ID != want {
			t.Fatalf("message %d: expected %s, got %s", i, want, first.Messages[i].ID)
		}
	}
	if first.LastMessage == nil || first.LastMessage.ID != "m3" {
		t.Fatalf("expected lastMessage m3, got %+v", first.LastMessage)
	}
	if first.Unread != 2 {
		t.Fatalf("expected 2 unread in Q1 thread, got %d", first.Unread)
	}

	second := threads[1]
	if second.Type != models.ThreadTypeJob || second.ContextID != "W1" {
		t.Fatalf("expected job thread W1 second, got %+v", second)
	}
	if second.Title != "Job #W1" {
		t.Fatalf("expected fallback title, got %q", second.Title)
	}
}

func TestMessagesForContextRejectsUnknownType(t *testing.T) {
	svc := &MessageService{MessageRepo: &stubMessageStore{}}
	_, err := svc.MessagesForContext(context.Background(), "me", "invoice", "X1")
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
