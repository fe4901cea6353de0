package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// UserRepository handles user data access.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByLogin retrieves a user by their unique login name.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	u := &model.User{}
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, login, created_at FROM users WHERE login = ?`, login,
	).Scan(&u.ID, &u.Login, &createdAt)
	if err != nil {
		return nil, notFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (login, created_at) VALUES (?, ?)`, u.Login, toMillis(now))
	if err != nil {
		if isUniqueViolation(err, "users") {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = fromMillis(toMillis(now))
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
