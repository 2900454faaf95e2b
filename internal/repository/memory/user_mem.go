// internal/repository/memory/user_mem.go
package memory

import (
	"context"
	"sync"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.UserProfile
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.UserProfile)}
}

// Create adds a new user profile document.
func (r *UserRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.UID]; exists {
		return util.ErrDuplicateEntry
	}
	r.users[user.UID] = *user
	return nil
}

// GetByUID retrieves a profile by its owner's uid.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[uid]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &user, nil
}

// GetByEmail retrieves a profile by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, util.ErrNotFound
}

// Update patches a profile's mutable fields.
func (r *UserRepository) Update(ctx context.Context, uid string, patch domain.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return util.ErrNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Image != nil {
		user.Image = patch.Image
	}
	if patch.EmailVerified != nil {
		user.EmailVerified = *patch.EmailVerified
	}
	r.users[uid] = user
	return nil
}

// Delete removes a profile document.
func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uid]; !ok {
		return util.ErrNotFound
	}
	delete(r.users, uid)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
