// internal/auth/store_pg.go
package auth

import (
	"context"
	"database/sql"
	"fmt"

	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"
)

// PostgresIdentityStore implements IdentityStore for PostgreSQL.
type PostgresIdentityStore struct {
	db repository.DBExecutor
}

// NewPostgresIdentityStore creates a new PostgresIdentityStore.
func NewPostgresIdentityStore(db repository.DBExecutor) *PostgresIdentityStore {
	return &PostgresIdentityStore{db: db}
}

const identityColumns = `uid, email, password_hash, email_verified, verify_token, created`

// Insert stores a new identity record.
func (s *PostgresIdentityStore) Insert(ctx context.Context, rec *IdentityRecord) error {
	query := `INSERT INTO identities (` + identityColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, query,
		rec.UID, rec.Email, rec.PasswordHash, rec.EmailVerified, rec.VerifyToken, rec.Created)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}
	return nil
}

// GetByUID retrieves an identity by uid.
func (s *PostgresIdentityStore) GetByUID(ctx context.Context, uid string) (*IdentityRecord, error) {
	return s.get(ctx, `SELECT `+identityColumns+` FROM identities WHERE uid = $1`, uid)
}

// GetByEmail retrieves an identity by email.
func (s *PostgresIdentityStore) GetByEmail(ctx context.Context, email string) (*IdentityRecord, error) {
	return s.get(ctx, `SELECT `+identityColumns+` FROM identities WHERE email = $1`, email)
}

// GetByVerifyToken retrieves an identity by its pending verification token.
func (s *PostgresIdentityStore) GetByVerifyToken(ctx context.Context, token string) (*IdentityRecord, error) {
	return s.get(ctx, `SELECT `+identityColumns+` FROM identities WHERE verify_token = $1`, token)
}

func (s *PostgresIdentityStore) get(ctx context.Context, query string, arg any) (*IdentityRecord, error) {
	var rec IdentityRecord
	err := s.db.GetContext(ctx, &rec, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	return &rec, nil
}

// Update rewrites an identity record.
func (s *PostgresIdentityStore) Update(ctx context.Context, rec *IdentityRecord) error {
	query := `UPDATE identities
              SET email = $1, password_hash = $2, email_verified = $3, verify_token = $4
              WHERE uid = $5`
	result, err := s.db.ExecContext(ctx, query,
		rec.Email, rec.PasswordHash, rec.EmailVerified, rec.VerifyToken, rec.UID)
	if err != nil {
		return fmt.Errorf("failed to update identity %s: %w", rec.UID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating identity %s: %w", rec.UID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes an identity record.
func (s *PostgresIdentityStore) Delete(ctx context.Context, uid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM identities WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete identity %s: %w", uid, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting identity %s: %w", uid, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

var _ IdentityStore = (*PostgresIdentityStore)(nil)
