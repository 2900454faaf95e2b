// internal/auth/local.go
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"salapi-backend/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IdentityRecord is the stored form of an identity.
type IdentityRecord struct {
	UID           string    `db:"uid"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	EmailVerified bool      `db:"email_verified"`
	VerifyToken   *string   `db:"verify_token"`
	Created       time.Time `db:"created"`
}

// IdentityStore persists identity records. Missing records are reported as
// util.ErrNotFound.
type IdentityStore interface {
	Insert(ctx context.Context, rec *IdentityRecord) error
	GetByUID(ctx context.Context, uid string) (*IdentityRecord, error)
	GetByEmail(ctx context.Context, email string) (*IdentityRecord, error)
	GetByVerifyToken(ctx context.Context, token string) (*IdentityRecord, error)
	Update(ctx context.Context, rec *IdentityRecord) error
	Delete(ctx context.Context, uid string) error
}

const (
	minPasswordLength = 6
	maxFailedAttempts = 5
	attemptWindow     = 15 * time.Minute
	reauthWindow      = 5 * time.Minute
)

// LocalProvider is a Provider backed by an IdentityStore, bcrypt credential
// hashes and mailed verification tokens.
type LocalProvider struct {
	store  IdentityStore
	mailer Mailer
	logger *slog.Logger

	mu          sync.Mutex
	failures    map[string][]time.Time // failed credential checks, keyed by email or uid
	lastReauths map[string]time.Time
}

// NewLocalProvider creates a LocalProvider.
func NewLocalProvider(store IdentityStore, mailer Mailer, logger *slog.Logger) *LocalProvider {
	return &LocalProvider{
		store:       store,
		mailer:      mailer,
		logger:      logger,
		failures:    make(map[string][]time.Time),
		lastReauths: make(map[string]time.Time),
	}
}

// SignUp registers a new identity with an email/password credential.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") || len(email) < 3 {
		return nil, NewError(CodeInvalidEmail)
	}
	if len(password) < minPasswordLength {
		return nil, NewError(CodeWeakPassword)
	}

	if _, err := p.store.GetByEmail(ctx, email); err == nil {
		return nil, NewError(CodeEmailAlreadyInUse)
	} else if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("sign up: failed to check existing identity: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("sign up: failed to hash password: %w", err)
	}

	rec := &IdentityRecord{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Created:      time.Now().UTC(),
	}
	if err := p.store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("sign up: failed to store identity: %w", err)
	}

	return identityOf(rec), nil
}

// SignIn verifies a credential and returns the identity.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if p.throttled(email) {
		return nil, NewError(CodeTooManyRequests)
	}

	rec, err := p.store.GetByEmail(ctx, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			p.recordFailure(email)
			return nil, NewError(CodeInvalidCredential)
		}
		return nil, fmt.Errorf("sign in: failed to load identity: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		p.recordFailure(email)
		return nil, NewError(CodeInvalidCredential)
	}

	p.clearFailures(email)
	return identityOf(rec), nil
}

// SendVerificationEmail issues a verification token and mails it.
func (p *LocalProvider) SendVerificationEmail(ctx context.Context, uid string) error {
	rec, err := p.store.GetByUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return NewError(CodeUserNotFound)
		}
		return fmt.Errorf("send verification: failed to load identity: %w", err)
	}
	if rec.EmailVerified {
		return nil
	}

	token := uuid.NewString()
	rec.VerifyToken = &token
	if err := p.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("send verification: failed to store token: %w", err)
	}

	body := fmt.Sprintf("Welcome to Salapi! Verify your email with this token: %s", token)
	if err := p.mailer.Send(ctx, rec.Email, "Verify your Salapi account", body); err != nil {
		return fmt.Errorf("send verification: failed to send mail: %w", err)
	}
	return nil
}

// VerifyEmail consumes a verification token and marks the identity verified.
func (p *LocalProvider) VerifyEmail(ctx context.Context, token string) (*Identity, error) {
	rec, err := p.store.GetByVerifyToken(ctx, token)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, NewError(CodeInvalidToken)
		}
		return nil, fmt.Errorf("verify email: failed to look up token: %w", err)
	}

	rec.EmailVerified = true
	rec.VerifyToken = nil
	if err := p.store.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("verify email: failed to store identity: %w", err)
	}
	return identityOf(rec), nil
}

// Reauthenticate re-proves the current password for a signed-in identity.
func (p *LocalProvider) Reauthenticate(ctx context.Context, uid, currentPassword string) error {
	if p.throttled(uid) {
		return NewError(CodeTooManyRequests)
	}

	rec, err := p.store.GetByUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return NewError(CodeUserNotFound)
		}
		return fmt.Errorf("reauthenticate: failed to load identity: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(currentPassword)) != nil {
		p.recordFailure(uid)
		return NewError(CodeWrongPassword)
	}

	p.clearFailures(uid)
	p.mu.Lock()
	p.lastReauths[uid] = time.Now()
	p.mu.Unlock()
	return nil
}

// ChangePassword sets a new password. The caller must have reauthenticated
// recently; otherwise the provider demands a fresh login.
func (p *LocalProvider) ChangePassword(ctx context.Context, uid, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return NewError(CodeWeakPassword)
	}

	p.mu.Lock()
	last, ok := p.lastReauths[uid]
	p.mu.Unlock()
	if !ok || time.Since(last) > reauthWindow {
		return NewError(CodeRequiresRecentLogin)
	}

	rec, err := p.store.GetByUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return NewError(CodeUserNotFound)
		}
		return fmt.Errorf("change password: failed to load identity: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: failed to hash password: %w", err)
	}
	rec.PasswordHash = string(hash)
	if err := p.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("change password: failed to store identity: %w", err)
	}
	return nil
}

// DeleteIdentity permanently removes the identity.
func (p *LocalProvider) DeleteIdentity(ctx context.Context, uid string) error {
	if err := p.store.Delete(ctx, uid); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return NewError(CodeUserNotFound)
		}
		return fmt.Errorf("delete identity: %w", err)
	}
	p.mu.Lock()
	delete(p.lastReauths, uid)
	delete(p.failures, uid)
	p.mu.Unlock()
	return nil
}

// GetIdentity looks up an identity by uid.
func (p *LocalProvider) GetIdentity(ctx context.Context, uid string) (*Identity, error) {
	rec, err := p.store.GetByUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, NewError(CodeUserNotFound)
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return identityOf(rec), nil
}

func (p *LocalProvider) throttled(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	cutoff := time.Now().Add(-attemptWindow)
	recent := p.failures[key][:0]
	for _, t := range p.failures[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	p.failures[key] = recent
	return len(recent) >= maxFailedAttempts
}

func (p *LocalProvider) recordFailure(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[key] = append(p.failures[key], time.Now())
}

func (p *LocalProvider) clearFailures(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failures, key)
}

func identityOf(rec *IdentityRecord) *Identity {
	return &Identity{UID: rec.UID, Email: rec.Email, EmailVerified: rec.EmailVerified}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Provider = (*LocalProvider)(nil)
