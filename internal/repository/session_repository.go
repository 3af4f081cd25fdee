package repository

import (
	"context"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// SessionRepository owns session rows. Flag updates are deliberately narrow:
// callers name the participant side they are writing for, so one participant
// can never overwrite the counterpart's consent flags.
type SessionRepository interface {
	// CreateWithParticipants inserts the session and marks both participants
	// as matched (onboarding_step + ismatched) in a single atomic unit. Either
	// everything lands or nothing does; a matched user without a session must
	// never be observable.
	CreateWithParticipants(ctx context.Context, s *domain.Session) error

	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetLatestByUser(ctx context.Context, userID string) (*domain.Session, error)

	UpdateReveal(ctx context.Context, id string, side domain.Side, value bool) (*domain.Session, error)
	UpdateSharePhone(ctx context.Context, id string, side domain.Side, value bool) (*domain.Session, error)
	UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) (*domain.Session, error)

	// IncrementMessageCount bumps message_count by exactly one and returns the
	// updated session.
	IncrementMessageCount(ctx context.Context, id string) (*domain.Session, error)

	// ExpireDue transitions every active session whose end_time has passed and
	// returns the transitioned sessions.
	ExpireDue(ctx context.Context, now time.Time) ([]*domain.Session, error)
}
