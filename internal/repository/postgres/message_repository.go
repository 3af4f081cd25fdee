package postgres

import (
	"context"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `
		INSERT INTO messages (id, session_id, sender_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.SessionID, m.SenderID, m.Text, m.CreatedAt)
	return err
}

func (r *messageRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, sessionID)
	return messages, err
}
