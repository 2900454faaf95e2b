// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	db repository.DBExecutor
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db repository.DBExecutor) repository.TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, uid, wallet_id, type, amount, category, custom_category, date, description, image, created`

// Create inserts a new transaction document.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.UID,
		transaction.WalletID,
		transaction.Type,
		transaction.Amount,
		transaction.Category,
		transaction.CustomCategory,
		transaction.Date,
		transaction.Description,
		transaction.Image,
		transaction.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := r.db.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	return &transaction, nil
}

// Update rewrites a transaction's mutable fields.
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	query := `UPDATE transactions
              SET wallet_id = $1, type = $2, amount = $3, category = $4,
                  custom_category = $5, date = $6, description = $7, image = $8
              WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		transaction.WalletID,
		transaction.Type,
		transaction.Amount,
		transaction.Category,
		transaction.CustomCategory,
		transaction.Date,
		transaction.Description,
		transaction.Image,
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", transaction.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating transaction %s: %w", transaction.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes a transaction document.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting transaction %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListByUID retrieves all transactions owned by a user, date descending.
func (r *TransactionRepository) ListByUID(ctx context.Context, uid string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE uid = $1 ORDER BY date DESC, created DESC`
	if err := r.db.SelectContext(ctx, &transactions, query, uid); err != nil {
		return nil, fmt.Errorf("failed to list transactions for uid %s: %w", uid, err)
	}
	return transactions, nil
}

// ListByWalletID retrieves all transactions referencing a wallet, date descending.
func (r *TransactionRepository) ListByWalletID(ctx context.Context, walletID string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE wallet_id = $1 ORDER BY date DESC, created DESC`
	if err := r.db.SelectContext(ctx, &transactions, query, walletID); err != nil {
		return nil, fmt.Errorf("failed to list transactions for wallet %s: %w", walletID, err)
	}
	return transactions, nil
}
