package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/messaging"

	"portalBack/internal/models"
	"portalBack/internal/repositories"
)

// NotificationService pushes FCM notifications to registered devices. A nil
// client disables sending; every send error is reported to the caller, who
// treats it as a warning.
type NotificationService struct {
	Client    *messaging.Client
	TokenRepo *repositories.DeviceTokenRepository
}

func (s *NotificationService) NewResponse(ctx context.Context, resp models.MarketplaceResponse) error {
	if resp.Request == nil {
		return nil
	}
	return s.sendToCustomer(ctx, resp.Request.CustomerID,
		"New response to your request",
		fmt.Sprintf("A contractor responded to %q", resp.Request.Title),
		map[string]string{"request_id": resp.RequestID, "response_id": resp.ID})
}

func (s *NotificationService) ResponseAccepted(ctx context.Context, wo models.WorkOrder) error {
	return s.sendToCustomer(ctx, wo.CustomerID,
		"Work order created",
		"Your accepted response is now a scheduled job",
		map[string]string{"work_order_id": wo.ID})
}

// NewMessage pushes to the recipient account directly; message parties are
// portal accounts, not customers.
func (s *NotificationService) NewMessage(ctx context.Context, msg models.Message) error {
	if s.Client == nil {
		return nil
	}
	tokens, err := s.TokenRepo.ListByAccount(ctx, msg.RecipientID)
	if err != nil {
		return err
	}
	return s.send(ctx, tokens, "New message", msg.MessageText,
		map[string]string{"message_id": msg.ID})
}

func (s *NotificationService) RegisterToken(ctx context.Context, token models.DeviceToken) (models.DeviceToken, error) {
	return s.TokenRepo.Register(ctx, token)
}

func (s *NotificationService) sendToCustomer(ctx context.Context, customerID, title, body string, data map[string]string) error {
	if s.Client == nil {
		return nil
	}
	tokens, err := s.TokenRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	return s.send(ctx, tokens, title, body, data)
}

func (s *NotificationService) send(ctx context.Context, tokens []models.DeviceToken, title, body string, data map[string]string) error {
	for _, t := range tokens {
		_, err := s.Client.Send(ctx, &messaging.Message{
			Token: t.Token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		})
		if err != nil {
			return fmt.Errorf("push to token %s: %w", t.ID, err)
		}
	}
	return nil
}
