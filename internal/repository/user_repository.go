package repository

import (
	"context"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// UserRepository reads user records and is the only place the matchmaking core
// touches the user-management collaborator's data.
type UserRepository interface {
	ListAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
