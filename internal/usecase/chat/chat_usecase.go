package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/realtime"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository"
	sessionuc "github.com/ishqrisk/ishqrisk-backend/internal/usecase/session"
)

// UseCase handles messaging inside a session: synchronous append, counter
// bump, then asynchronous propagation over the broker.
type UseCase struct {
	sessions    *sessionuc.UseCase
	sessionRepo repository.SessionRepository
	messageRepo repository.MessageRepository
	broker      realtime.Broker
	log         *slog.Logger

	// Clock is replaceable in tests; defaults to time.Now.
	Clock func() time.Time
}

func NewUseCase(
	sessions *sessionuc.UseCase,
	sessionRepo repository.SessionRepository,
	messageRepo repository.MessageRepository,
	broker realtime.Broker,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		sessions:    sessions,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		broker:      broker,
		log:         log,
		Clock:       time.Now,
	}
}

// SendMessage appends one message and bumps message_count by exactly one.
// Expired sessions still accept messages; only a closed session rejects them.
// The count is advisory (it drives the remaining-message display), so sends
// keep working past the display cap.
func (uc *UseCase) SendMessage(ctx context.Context, sessionID, senderID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	s, err := uc.sessions.LoadForParticipant(ctx, sessionID, senderID)
	if err != nil {
		return nil, err
	}
	if s.Status == domain.SessionStatusClosed {
		return nil, domain.ErrSessionClosed
	}

	m := &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: uc.Clock().UTC(),
	}
	if err := uc.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	updated, err := uc.sessionRepo.IncrementMessageCount(ctx, sessionID)
	if err != nil {
		// The message row landed; surface the counter failure rather than
		// silently under-counting.
		return nil, err
	}

	if err := uc.broker.PublishMessage(ctx, m); err != nil {
		uc.log.Warn("failed to publish message", "session_id", sessionID, "err", err)
	}
	if err := uc.broker.PublishSessionUpdate(ctx, updated); err != nil {
		uc.log.Warn("failed to publish session update", "session_id", sessionID, "err", err)
	}

	return m, nil
}

// ListMessages returns the session's messages in creation order. Participants
// only.
func (uc *UseCase) ListMessages(ctx context.Context, sessionID, viewerID string) ([]*domain.Message, error) {
	if _, err := uc.sessions.LoadForParticipant(ctx, sessionID, viewerID); err != nil {
		return nil, err
	}
	return uc.messageRepo.ListBySession(ctx, sessionID)
}

// Typing broadcasts an ephemeral typing indicator. Nothing is persisted; the
// subscriber drops the indicator if no refresh arrives within its decay
// window.
func (uc *UseCase) Typing(ctx context.Context, sessionID, senderID string, isTyping bool) error {
	s, err := uc.sessions.LoadForParticipant(ctx, sessionID, senderID)
	if err != nil {
		return err
	}
	if s.Status == domain.SessionStatusClosed {
		return domain.ErrSessionClosed
	}
	return uc.broker.PublishTyping(ctx, sessionID, senderID, isTyping)
}
