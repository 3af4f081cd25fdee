package realtime

import (
	"context"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

type EventType string

const (
	EventMessageInserted EventType = "message_inserted"
	EventSessionUpdated  EventType = "session_updated"
	EventTyping          EventType = "typing"
)

// TypingPayload is an ephemeral typing indicator. It is never persisted;
// subscribers treat an indicator as stale if no refresh arrives within a few
// seconds.
type TypingPayload struct {
	SenderID string `json:"sender_id"`
	IsTyping bool   `json:"is_typing"`
}

// Event is what flows over a session's realtime channel. Exactly one of
// Message, Session, Typing is set, depending on Type.
type Event struct {
	Type      EventType        `json:"type"`
	SessionID string           `json:"session_id"`
	Message   *domain.Message  `json:"message,omitempty"`
	Session   *domain.Session  `json:"session,omitempty"`
	Typing    *TypingPayload   `json:"typing,omitempty"`
}

// Broker fans session events out to the participants' live connections. Every
// producer (message append, consent updates, expiry) publishes through this
// single interface instead of talking to the transport directly.
//
// Events are delivered to every subscriber of the session, including the one
// acting for the original sender; suppressing the sender's own echo is the
// subscriber's job, keyed on sender id.
type Broker interface {
	PublishMessage(ctx context.Context, m *domain.Message) error
	PublishSessionUpdate(ctx context.Context, s *domain.Session) error
	PublishTyping(ctx context.Context, sessionID, senderID string, isTyping bool) error

	// Subscribe starts delivering the session's events on the returned channel
	// until the cancel func is called; the channel is closed afterwards.
	Subscribe(ctx context.Context, sessionID string) (<-chan Event, func(), error)
}
