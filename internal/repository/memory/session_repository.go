package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// SessionRepository is the in-memory counterpart of the Postgres session
// store. It holds a reference to the user repository so CreateWithParticipants
// can apply the session insert and the matched-flag updates atomically, the
// way the SQL implementation does in one transaction.
type SessionRepository struct {
	mu        sync.Mutex
	sessions  map[string]*domain.Session
	order     []string
	users     *UserRepository
	createErr error
}

func NewSessionRepository(users *UserRepository) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.Session),
		users:    users,
	}
}

// WithCreateError makes CreateWithParticipants fail.
func (r *SessionRepository) WithCreateError(err error) *SessionRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErr = err
	return r
}

func (r *SessionRepository) CreateWithParticipants(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if err := r.users.markMatched(s.UserA, s.UserB); err != nil {
		return err
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.StartTime
	}
	clone := *s
	r.sessions[s.ID] = &clone
	r.order = append(r.order, s.ID)
	return nil
}

func (r *SessionRepository) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cloneLocked(id)
}

func (r *SessionRepository) GetLatestByUser(_ context.Context, userID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *domain.Session
	for _, id := range r.order {
		s := r.sessions[id]
		if !s.HasUser(userID) {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) || (s.CreatedAt.Equal(latest.CreatedAt)) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *SessionRepository) UpdateReveal(_ context.Context, id string, side domain.Side, value bool) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if side == domain.SideA {
		s.UserAReveal = value
	} else {
		s.UserBReveal = value
	}
	clone := *s
	return &clone, nil
}

func (r *SessionRepository) UpdateSharePhone(_ context.Context, id string, side domain.Side, value bool) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if side == domain.SideA {
		s.UserASharePhone = value
	} else {
		s.UserBSharePhone = value
	}
	clone := *s
	return &clone, nil
}

func (r *SessionRepository) UpdateStatus(_ context.Context, id string, status domain.SessionStatus) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s.Status = status
	clone := *s
	return &clone, nil
}

func (r *SessionRepository) IncrementMessageCount(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s.MessageCount++
	clone := *s
	return &clone, nil
}

func (r *SessionRepository) ExpireDue(_ context.Context, now time.Time) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*domain.Session
	for _, id := range r.order {
		s := r.sessions[id]
		if s.Status == domain.SessionStatusActive && s.DueToExpire(now) {
			s.Status = domain.SessionStatusExpired
			clone := *s
			expired = append(expired, &clone)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ID < expired[j].ID })
	return expired, nil
}

// All returns every stored session, for test assertions.
func (r *SessionRepository) All() []*domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Session, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.sessions[id]
		out = append(out, &clone)
	}
	return out
}

func (r *SessionRepository) cloneLocked(id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}
