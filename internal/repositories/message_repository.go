package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO messages (id, sender_id, recipient_id, message_text, request_id, work_order_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.MessageText, msg.RequestID, msg.WorkOrderID, msg.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// ListByUser returns every message the user sent or received, newest first.
func (r *MessageRepository) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, sender_id, recipient_id, message_text, request_id, work_order_id, created_at, read_at
        FROM messages WHERE sender_id = $1 OR recipient_id = $1
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListByContext returns the messages of one thread, ascending.
func (r *MessageRepository) ListByContext(ctx context.Context, userID, contextType, contextID string) ([]models.Message, error) {
	column := "request_id"
	if contextType == models.ThreadTypeJob {
		column = "work_order_id"
	}
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, sender_id, recipient_id, message_text, request_id, work_order_id, created_at, read_at
        FROM messages WHERE (sender_id = $1 OR recipient_id = $1) AND `+column+` = $2
        ORDER BY created_at ASC`, userID, contextID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// MarkRead stamps read_at on unread messages addressed to the user.
func (r *MessageRepository) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `
        UPDATE messages SET read_at = $1
        WHERE id = ANY($2) AND recipient_id = $3 AND read_at IS NULL`,
		time.Now(), idArray(messageIDs), userID)
	return err
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var msgs []models.Message
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.MessageText,
			&msg.RequestID, &msg.WorkOrderID, &msg.CreatedAt, &msg.ReadAt)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// idArray renders a Postgres text array literal for ANY(). Elements are
// quoted so user-supplied values with commas, braces or quotes cannot
// corrupt the literal.
func idArray(ids []string) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		id = strings.ReplaceAll(id, `\`, `\\`)
		id = strings.ReplaceAll(id, `"`, `\"`)
		out += `"` + id + `"`
	}
	return out + "}"
}
