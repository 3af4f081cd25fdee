package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateWithParticipants(ctx context.Context, s *domain.Session) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session create: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO sessions (
			id, user_a, user_b, nickname_a, nickname_b,
			message_count, status, start_time, end_time,
			user_a_reveal, user_b_reveal, user_a_share_phone, user_b_share_phone,
			icebreaker
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insert,
		s.ID, s.UserA, s.UserB, s.NicknameA, s.NicknameB,
		s.MessageCount, s.Status, s.StartTime, s.EndTime,
		s.UserAReveal, s.UserBReveal, s.UserASharePhone, s.UserBSharePhone,
		s.Icebreaker,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	update := `
		UPDATE users
		SET onboarding_step = $1, ismatched = true, updated_at = NOW()
		WHERE id IN ($2, $3)
	`
	result, err := tx.ExecContext(ctx, update, domain.OnboardingStepMatched, s.UserA, s.UserB)
	if err != nil {
		return fmt.Errorf("mark participants matched: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows != 2 {
		return domain.ErrUserNotFound
	}

	return tx.Commit()
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	query := `SELECT * FROM sessions WHERE id = $1`
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) GetLatestByUser(ctx context.Context, userID string) (*domain.Session, error) {
	var s domain.Session
	query := `
		SELECT * FROM sessions
		WHERE user_a = $1 OR user_b = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &s, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) UpdateReveal(ctx context.Context, id string, side domain.Side, value bool) (*domain.Session, error) {
	return r.updateFlag(ctx, id, revealColumn(side), value)
}

func (r *sessionRepository) UpdateSharePhone(ctx context.Context, id string, side domain.Side, value bool) (*domain.Session, error) {
	return r.updateFlag(ctx, id, sharePhoneColumn(side), value)
}

// updateFlag flips one consent column. The column name comes from the fixed
// tables below, never from request input.
func (r *sessionRepository) updateFlag(ctx context.Context, id, column string, value bool) (*domain.Session, error) {
	var s domain.Session
	query := fmt.Sprintf(`UPDATE sessions SET %s = $1 WHERE id = $2 RETURNING *`, column)
	err := r.db.GetContext(ctx, &s, query, value, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) (*domain.Session, error) {
	var s domain.Session
	query := `UPDATE sessions SET status = $1 WHERE id = $2 RETURNING *`
	err := r.db.GetContext(ctx, &s, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) IncrementMessageCount(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	query := `UPDATE sessions SET message_count = message_count + 1 WHERE id = $1 RETURNING *`
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) ExpireDue(ctx context.Context, now time.Time) ([]*domain.Session, error) {
	var sessions []*domain.Session
	query := `
		UPDATE sessions SET status = $1
		WHERE status = $2 AND end_time <= $3
		RETURNING *
	`
	err := r.db.SelectContext(ctx, &sessions, query, domain.SessionStatusExpired, domain.SessionStatusActive, now)
	return sessions, err
}

func revealColumn(side domain.Side) string {
	if side == domain.SideA {
		return "user_a_reveal"
	}
	return "user_b_reveal"
}

func sharePhoneColumn(side domain.Side) string {
	if side == domain.SideA {
		return "user_a_share_phone"
	}
	return "user_b_share_phone"
}
