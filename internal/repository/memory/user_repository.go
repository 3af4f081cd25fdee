package memory

import (
	"context"
	"sync"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// UserRepository is an in-memory implementation used for unit testing the
// usecases without a running Postgres.
type UserRepository struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	order     []string
	listErr   error
	getErrors map[string]error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:     make(map[string]*domain.User),
		getErrors: make(map[string]error),
	}
}

// Seed inserts or replaces a user.
func (r *UserRepository) Seed(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.ID]; !exists {
		r.order = append(r.order, u.ID)
	}
	clone := *u
	r.users[u.ID] = &clone
}

// WithListError makes ListAll fail, simulating an unreachable store.
func (r *UserRepository) WithListError(err error) *UserRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listErr = err
	return r
}

// WithGetError makes GetByID fail for one specific user id.
func (r *UserRepository) WithGetError(id string, err error) *UserRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getErrors[id] = err
	return r
}

func (r *UserRepository) ListAll(context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.users[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, forced := r.getErrors[id]; forced {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// markMatched is called by the session repository to keep the pair insert and
// the participant flag updates one atomic unit, mirroring the SQL transaction.
func (r *UserRepository) markMatched(ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.users[id]; !ok {
			return domain.ErrUserNotFound
		}
	}
	for _, id := range ids {
		r.users[id].Matched = true
		r.users[id].OnboardingStep = domain.OnboardingStepMatched
	}
	return nil
}
