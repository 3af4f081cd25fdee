package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/realtime"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroker struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (b *recordingBroker) PublishMessage(_ context.Context, m *domain.Message) error {
	b.record(realtime.Event{Type: realtime.EventMessageInserted, SessionID: m.SessionID, Message: m})
	return nil
}

func (b *recordingBroker) PublishSessionUpdate(_ context.Context, s *domain.Session) error {
	b.record(realtime.Event{Type: realtime.EventSessionUpdated, SessionID: s.ID, Session: s})
	return nil
}

func (b *recordingBroker) PublishTyping(_ context.Context, sessionID, senderID string, isTyping bool) error {
	b.record(realtime.Event{
		Type:      realtime.EventTyping,
		SessionID: sessionID,
		Typing:    &realtime.TypingPayload{SenderID: senderID, IsTyping: isTyping},
	})
	return nil
}

func (b *recordingBroker) Subscribe(context.Context, string) (<-chan realtime.Event, func(), error) {
	ch := make(chan realtime.Event)
	close(ch)
	return ch, func() {}, nil
}

func (b *recordingBroker) record(ev realtime.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func (b *recordingBroker) byType(t realtime.EventType) []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []realtime.Event
	for _, ev := range b.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	uc       *UseCase
	users    *memory.UserRepository
	sessions *memory.SessionRepository
	broker   *recordingBroker
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserRepository()
	sessions := memory.NewSessionRepository(users)
	broker := &recordingBroker{}

	cfg := config.MatchingConfig{
		SessionTTL: 24 * time.Hour,
		MessageCap: 100,
	}
	uc := NewUseCase(sessions, users, broker, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	f := &fixture{
		uc:       uc,
		users:    users,
		sessions: sessions,
		broker:   broker,
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	uc.Clock = func() time.Time { return f.now }
	return f
}

func (f *fixture) seedSession(t *testing.T) *domain.Session {
	t.Helper()

	fullA, fullB := "Alice Smith", "Bob Jones"
	genderF, genderM := "female", "male"
	phoneA, phoneB := "+100", "+200"
	year := "2nd"
	f.users.Seed(&domain.User{ID: "ua", FullName: &fullA, Gender: &genderF, Phone: &phoneA, YearOfStudy: &year, Approved: true})
	f.users.Seed(&domain.User{ID: "ub", FullName: &fullB, Gender: &genderM, Phone: &phoneB, YearOfStudy: &year, Approved: true})

	s := &domain.Session{
		ID:        "s1",
		UserA:     "ua",
		UserB:     "ub",
		NicknameA: "owl",
		NicknameB: "fox",
		Status:    domain.SessionStatusActive,
		StartTime: f.now,
		EndTime:   f.now.Add(24 * time.Hour),
	}
	require.NoError(t, f.sessions.CreateWithParticipants(context.Background(), s))
	return s
}

func TestSetReveal_MutualConsentSequencing(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	view, err := f.uc.SetReveal(ctx, "s1", "ua", true)
	require.NoError(t, err)
	assert.True(t, view.MyReveal)
	assert.False(t, view.BothRevealed, "one-sided reveal must not unlock anything")
	assert.Nil(t, view.Partner)

	// the counterpart still sees nothing revealed about themselves
	partnerView, err := f.uc.GetView(ctx, "s1", "ub")
	require.NoError(t, err)
	assert.False(t, partnerView.MyReveal)
	assert.False(t, partnerView.BothRevealed)

	view, err = f.uc.SetReveal(ctx, "s1", "ub", true)
	require.NoError(t, err)
	assert.True(t, view.BothRevealed, "second reveal flips the gate")
	require.NotNil(t, view.Partner)
	assert.Equal(t, "Alice Smith", view.Partner.FullName)
}

func TestSetReveal_OnlyOwnFlagWritten(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	_, err := f.uc.SetReveal(ctx, "s1", "ub", true)
	require.NoError(t, err)

	s, err := f.sessions.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, s.UserAReveal)
	assert.True(t, s.UserBReveal)
}

func TestPhoneVisibility_RequiresCounterpartShareFlag(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	_, err := f.uc.SetReveal(ctx, "s1", "ua", true)
	require.NoError(t, err)
	_, err = f.uc.SetReveal(ctx, "s1", "ub", true)
	require.NoError(t, err)

	// ua opts into sharing their phone; that exposes ua's phone to ub,
	// not the other way around
	_, err = f.uc.SetSharePhone(ctx, "s1", "ua", true)
	require.NoError(t, err)

	viewB, err := f.uc.GetView(ctx, "s1", "ub")
	require.NoError(t, err)
	require.NotNil(t, viewB.Partner)
	require.NotNil(t, viewB.Partner.Phone)
	assert.Equal(t, "+100", *viewB.Partner.Phone)

	viewA, err := f.uc.GetView(ctx, "s1", "ua")
	require.NoError(t, err)
	require.NotNil(t, viewA.Partner)
	assert.Nil(t, viewA.Partner.Phone, "viewer's own share flag must not expose the counterpart's phone")
}

func TestPhoneVisibility_GatedOnMutualReveal(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	_, err := f.uc.SetSharePhone(ctx, "s1", "ua", true)
	require.NoError(t, err)
	_, err = f.uc.SetReveal(ctx, "s1", "ub", true)
	require.NoError(t, err)

	view, err := f.uc.GetView(ctx, "s1", "ub")
	require.NoError(t, err)
	assert.Nil(t, view.Partner, "no identity before mutual reveal, share flag or not")
}

func TestSetFlag_NonParticipantRejected(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)

	_, err := f.uc.SetReveal(context.Background(), "s1", "intruder", true)
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestClose_TerminalAndIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	view, err := f.uc.Close(ctx, "s1", "ua")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusClosed, view.Status)

	// closing again is a no-op, not an error
	view, err = f.uc.Close(ctx, "s1", "ub")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusClosed, view.Status)

	// consent writes are rejected once closed
	_, err = f.uc.SetReveal(ctx, "s1", "ua", true)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestLazyExpiry_OnAccess(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	f.now = f.now.Add(24*time.Hour + time.Minute)

	view, err := f.uc.GetView(ctx, "s1", "ua")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusExpired, view.Status)

	s, err := f.sessions.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusExpired, s.Status)
}

func TestExpiry_ExactBoundary(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)

	// now == end_time already counts as expired
	f.now = f.now.Add(24 * time.Hour)

	view, err := f.uc.GetView(context.Background(), "s1", "ua")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusExpired, view.Status)
}

func TestExpiredSession_StillAcceptsConsentWrites(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	f.now = f.now.Add(25 * time.Hour)

	view, err := f.uc.SetReveal(ctx, "s1", "ua", true)
	require.NoError(t, err, "reveal protocol keeps running after expiry")
	assert.True(t, view.MyReveal)
}

func TestSweepExpired_TransitionsAndPublishes(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	f.now = f.now.Add(25 * time.Hour)

	n, err := f.uc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	updates := f.broker.byType(realtime.EventSessionUpdated)
	require.NotEmpty(t, updates)
	assert.Equal(t, domain.SessionStatusExpired, updates[len(updates)-1].Session.Status)

	// nothing left to sweep
	n, err = f.uc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGetCurrentView_ReturnsLatestSession(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)

	view, err := f.uc.GetCurrentView(context.Background(), "ua")
	require.NoError(t, err)
	assert.Equal(t, "s1", view.ID)
	assert.Equal(t, "owl", view.MyNickname)
	assert.Equal(t, "fox", view.PartnerNickname)
}

func TestGetCurrentView_NoSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetCurrentView(context.Background(), "ua")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestView_MessagesLeftSaturatesAtZero(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)
	ctx := context.Background()

	for i := 0; i < 105; i++ {
		_, err := f.sessions.IncrementMessageCount(ctx, "s1")
		require.NoError(t, err)
	}

	view, err := f.uc.GetView(ctx, "s1", "ua")
	require.NoError(t, err)
	assert.Equal(t, 105, view.MessageCount)
	assert.Equal(t, 0, view.MessagesLeft)
}

func TestSetFlag_PublishesSessionUpdate(t *testing.T) {
	f := newFixture(t)
	f.seedSession(t)

	_, err := f.uc.SetReveal(context.Background(), "s1", "ua", true)
	require.NoError(t, err)

	updates := f.broker.byType(realtime.EventSessionUpdated)
	require.Len(t, updates, 1)
	assert.True(t, updates[0].Session.UserAReveal)
}
