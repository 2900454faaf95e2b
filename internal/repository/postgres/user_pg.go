// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	db repository.DBExecutor
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db repository.DBExecutor) repository.UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user profile document.
func (r *UserRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	query := `INSERT INTO users (uid, name, email, image, email_verified, created)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		user.UID, user.Name, user.Email, user.Image, user.EmailVerified, user.Created)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

// GetByUID retrieves a profile by its owner's uid.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	query := `SELECT uid, name, email, image, email_verified, created FROM users WHERE uid = $1`
	err := r.db.GetContext(ctx, &user, query, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by uid %s: %w", uid, err)
	}
	return &user, nil
}

// GetByEmail retrieves a profile by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	query := `SELECT uid, name, email, image, email_verified, created FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// Update patches a profile's mutable fields.
func (r *UserRepository) Update(ctx context.Context, uid string, patch domain.UserPatch) error {
	query := `UPDATE users
              SET name           = COALESCE($1, name),
                  image          = COALESCE($2, image),
                  email_verified = COALESCE($3, email_verified)
              WHERE uid = $4`
	result, err := r.db.ExecContext(ctx, query, patch.Name, patch.Image, patch.EmailVerified, uid)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating user %s: %w", uid, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes a profile document.
func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", uid, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting user %s: %w", uid, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
