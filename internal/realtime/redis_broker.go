package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisBroker implements Broker on top of Redis pub/sub. Each session gets its
// own channel, so a subscriber only ever sees its own conversation's traffic.
type RedisBroker struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRedisBroker(client *redis.Client, log *slog.Logger) *RedisBroker {
	return &RedisBroker{client: client, log: log}
}

func channelFor(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (b *RedisBroker) PublishMessage(ctx context.Context, m *domain.Message) error {
	return b.publish(ctx, Event{
		Type:      EventMessageInserted,
		SessionID: m.SessionID,
		Message:   m,
	})
}

func (b *RedisBroker) PublishSessionUpdate(ctx context.Context, s *domain.Session) error {
	return b.publish(ctx, Event{
		Type:      EventSessionUpdated,
		SessionID: s.ID,
		Session:   s,
	})
}

func (b *RedisBroker) PublishTyping(ctx context.Context, sessionID, senderID string, isTyping bool) error {
	return b.publish(ctx, Event{
		Type:      EventTyping,
		SessionID: sessionID,
		Typing:    &TypingPayload{SenderID: senderID, IsTyping: isTyping},
	})
}

func (b *RedisBroker) publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.client.Publish(ctx, channelFor(ev.SessionID), payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, sessionID string) (<-chan Event, func(), error) {
	pubsub := b.client.Subscribe(ctx, channelFor(sessionID))

	// Receive forces the SUBSCRIBE round trip so no event published after
	// Subscribe returns is lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe session channel: %w", err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn("dropping malformed realtime event", "session_id", sessionID, "err", err)
				continue
			}
			events <- ev
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return events, cancel, nil
}
