package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByLogin retrieves a user by their unique login name.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, login, created_at FROM users WHERE login = $1`, login,
	).Scan(&u.ID, &u.Login, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (login) VALUES ($1) RETURNING id, created_at`,
		u.Login,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isDuplicateConstraintError(err, constraintUserLogin) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
