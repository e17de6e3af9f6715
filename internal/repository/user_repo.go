package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
}

// UserSQLRepository implements UserRepository on PostgreSQL.
type UserSQLRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserSQLRepository.
func NewUserRepository(db *sqlx.DB) *UserSQLRepository {
	return &UserSQLRepository{db: db}
}

// GetByID returns a user by id.
func (r *UserSQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *UserSQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user account.
func (r *UserSQLRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (id, name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return utils.ErrEmailExists
	}
	return err
}

// Update persists profile fields and bumps updated_at.
func (r *UserSQLRepository) Update(ctx context.Context, u *models.User) error {
	const q = `
		UPDATE users SET name = $2, email = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash).Scan(&u.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return utils.ErrEmailExists
	}
	return err
}
