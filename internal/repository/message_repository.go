package repository

import (
	"context"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// MessageRepository is append-only: messages are never mutated or deleted.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	// ListBySession returns the session's messages ordered by created_at ascending.
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error)
}
