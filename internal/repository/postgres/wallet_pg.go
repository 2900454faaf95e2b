// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"

	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	db repository.DBExecutor
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db repository.DBExecutor) repository.WalletRepository {
	return &WalletRepository{db: db}
}

// Create inserts a new wallet document.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (id, uid, name, image, amount, total_income, total_expenses, created)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		wallet.ID, wallet.UID, wallet.Name, wallet.Image,
		wallet.Amount, wallet.TotalIncome, wallet.TotalExpenses, wallet.Created)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetByID retrieves a wallet by its ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, uid, name, image, amount, total_income, total_expenses, created FROM wallets WHERE id = $1`
	err := r.db.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by ID %s: %w", id, err)
	}
	return &wallet, nil
}

// ListByUID retrieves all wallets owned by a user, newest first.
func (r *WalletRepository) ListByUID(ctx context.Context, uid string) ([]domain.Wallet, error) {
	wallets := []domain.Wallet{}
	query := `SELECT id, uid, name, image, amount, total_income, total_expenses, created
              FROM wallets WHERE uid = $1 ORDER BY created DESC`
	if err := r.db.SelectContext(ctx, &wallets, query, uid); err != nil {
		return nil, fmt.Errorf("failed to list wallets for uid %s: %w", uid, err)
	}
	return wallets, nil
}

// Update patches a wallet's mutable fields.
func (r *WalletRepository) Update(ctx context.Context, id string, patch domain.WalletPatch) error {
	query := `UPDATE wallets
              SET name   = COALESCE($1, name),
                  image  = COALESCE($2, image),
                  amount = COALESCE($3, amount)
              WHERE id = $4`
	var amount *string
	if patch.Amount != nil {
		s := patch.Amount.String()
		amount = &s
	}
	result, err := r.db.ExecContext(ctx, query, patch.Name, patch.Image, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update wallet %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes a wallet document.
func (r *WalletRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting wallet %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ApplyLedgerEffect applies the given deltas to the wallet's cached balance
// fields in a single UPDATE, so concurrent mutations cannot lose each
// other's increments.
func (r *WalletRepository) ApplyLedgerEffect(ctx context.Context, id string, amountDelta, incomeDelta, expenseDelta decimal.Decimal) error {
	query := `UPDATE wallets
              SET amount         = amount + $1,
                  total_income   = total_income + $2,
                  total_expenses = total_expenses + $3
              WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, amountDelta, incomeDelta, expenseDelta, id)
	if err != nil {
		return fmt.Errorf("failed to apply ledger effect to wallet %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after ledger effect on wallet %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
