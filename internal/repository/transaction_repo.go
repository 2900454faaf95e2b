// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"salapi-backend/internal/domain"
)

// TransactionRepository defines the interface for transaction document operations.
//
// List methods return transactions ordered by date descending; callers
// (exports, statistics) rely on that order being established at fetch time.
type TransactionRepository interface {
	// Create adds a new transaction document.
	Create(ctx context.Context, transaction *domain.Transaction) error
	// GetByID retrieves a transaction by its ID.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// Update rewrites a transaction's mutable fields.
	Update(ctx context.Context, transaction *domain.Transaction) error
	// Delete removes a transaction document.
	Delete(ctx context.Context, id string) error
	// ListByUID retrieves all transactions owned by a user.
	ListByUID(ctx context.Context, uid string) ([]domain.Transaction, error)
	// ListByWalletID retrieves all transactions referencing a wallet.
	ListByWalletID(ctx context.Context, walletID string) ([]domain.Transaction, error)
}
