// internal/repository/user_repo.go
package repository

import (
	"context"

	"salapi-backend/internal/domain"
)

// UserRepository defines the interface for user profile document operations.
type UserRepository interface {
	// Create adds a new user profile document.
	Create(ctx context.Context, user *domain.UserProfile) error
	// GetByUID retrieves a profile by its owner's uid.
	GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error)
	// GetByEmail retrieves a profile by email address.
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	// Update patches a profile's mutable fields.
	Update(ctx context.Context, uid string, patch domain.UserPatch) error
	// Delete removes a profile document.
	Delete(ctx context.Context, uid string) error
}
