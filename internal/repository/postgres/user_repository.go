package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	query := `SELECT * FROM users ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
