// internal/repository/memory/wallet_mem.go
package memory

import (
	"context"
	"sort"
	"sync"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"

	"github.com/shopspring/decimal"
)

// WalletRepository is an in-memory repository.WalletRepository.
// Increments are applied synchronously under a mutex, giving the same
// lost-update-free behaviour the Postgres implementation gets from a single
// UPDATE statement.
type WalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]domain.Wallet
}

// NewWalletRepository creates an empty in-memory wallet repository.
func NewWalletRepository() *WalletRepository {
	return &WalletRepository{wallets: make(map[string]domain.Wallet)}
}

// Create adds a new wallet document.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.wallets[wallet.ID]; exists {
		return util.ErrDuplicateEntry
	}
	r.wallets[wallet.ID] = *wallet
	return nil
}

// GetByID retrieves a wallet by its ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.wallets[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &wallet, nil
}

// ListByUID retrieves all wallets owned by a user, newest first.
func (r *WalletRepository) ListByUID(ctx context.Context, uid string) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallets := []domain.Wallet{}
	for _, w := range r.wallets {
		if w.UID == uid {
			wallets = append(wallets, w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].Created.After(wallets[j].Created)
	})
	return wallets, nil
}

// Update patches a wallet's mutable fields.
func (r *WalletRepository) Update(ctx context.Context, id string, patch domain.WalletPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.wallets[id]
	if !ok {
		return util.ErrNotFound
	}
	if patch.Name != nil {
		wallet.Name = *patch.Name
	}
	if patch.Image != nil {
		wallet.Image = patch.Image
	}
	if patch.Amount != nil {
		wallet.Amount = *patch.Amount
	}
	r.wallets[id] = wallet
	return nil
}

// Delete removes a wallet document.
func (r *WalletRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.wallets, id)
	return nil
}

// ApplyLedgerEffect applies the given deltas to the wallet's cached balance fields.
func (r *WalletRepository) ApplyLedgerEffect(ctx context.Context, id string, amountDelta, incomeDelta, expenseDelta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.wallets[id]
	if !ok {
		return util.ErrNotFound
	}
	wallet.Amount = wallet.Amount.Add(amountDelta)
	wallet.TotalIncome = wallet.TotalIncome.Add(incomeDelta)
	wallet.TotalExpenses = wallet.TotalExpenses.Add(expenseDelta)
	r.wallets[id] = wallet
	return nil
}

var _ repository.WalletRepository = (*WalletRepository)(nil)
