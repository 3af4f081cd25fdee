package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// MessageRepository is the in-memory append-only message store.
type MessageRepository struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *m
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *MessageRepository) ListBySession(_ context.Context, sessionID string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Message
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
