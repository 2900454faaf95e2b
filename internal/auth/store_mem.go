// internal/auth/store_mem.go
package auth

import (
	"context"
	"sync"

	"salapi-backend/internal/util"
)

// MemoryIdentityStore is an in-memory IdentityStore used by tests.
type MemoryIdentityStore struct {
	mu      sync.RWMutex
	records map[string]IdentityRecord
}

// NewMemoryIdentityStore creates an empty in-memory identity store.
func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{records: make(map[string]IdentityRecord)}
}

// Insert stores a new identity record.
func (s *MemoryIdentityStore) Insert(ctx context.Context, rec *IdentityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.UID]; exists {
		return util.ErrDuplicateEntry
	}
	s.records[rec.UID] = *rec
	return nil
}

// GetByUID retrieves an identity by uid.
func (s *MemoryIdentityStore) GetByUID(ctx context.Context, uid string) (*IdentityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[uid]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &rec, nil
}

// GetByEmail retrieves an identity by email.
func (s *MemoryIdentityStore) GetByEmail(ctx context.Context, email string) (*IdentityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.Email == email {
			r := rec
			return &r, nil
		}
	}
	return nil, util.ErrNotFound
}

// GetByVerifyToken retrieves an identity by its pending verification token.
func (s *MemoryIdentityStore) GetByVerifyToken(ctx context.Context, token string) (*IdentityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.VerifyToken != nil && *rec.VerifyToken == token {
			r := rec
			return &r, nil
		}
	}
	return nil, util.ErrNotFound
}

// Update rewrites an identity record.
func (s *MemoryIdentityStore) Update(ctx context.Context, rec *IdentityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.UID]; !ok {
		return util.ErrNotFound
	}
	s.records[rec.UID] = *rec
	return nil
}

// Delete removes an identity record.
func (s *MemoryIdentityStore) Delete(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[uid]; !ok {
		return util.ErrNotFound
	}
	delete(s.records, uid)
	return nil
}

var _ IdentityStore = (*MemoryIdentityStore)(nil)
