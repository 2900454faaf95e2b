// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"salapi-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet document operations.
type WalletRepository interface {
	// Create adds a new wallet document.
	Create(ctx context.Context, wallet *domain.Wallet) error
	// GetByID retrieves a wallet by its ID.
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	// ListByUID retrieves all wallets owned by a user, newest first.
	ListByUID(ctx context.Context, uid string) ([]domain.Wallet, error)
	// Update patches a wallet's mutable fields (name/image/amount).
	Update(ctx context.Context, id string, patch domain.WalletPatch) error
	// Delete removes a wallet document.
	Delete(ctx context.Context, id string) error
	// ApplyLedgerEffect applies the given deltas to the wallet's cached
	// balance fields as one atomic server-side increment, never a
	// read-modify-write. A missing wallet is reported as util.ErrNotFound.
	ApplyLedgerEffect(ctx context.Context, id string, amountDelta, incomeDelta, expenseDelta decimal.Decimal) error
}
