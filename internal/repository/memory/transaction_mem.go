// internal/repository/memory/transaction_mem.go
package memory

import (
	"context"
	"sort"
	"sync"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"
)

// TransactionRepository is an in-memory repository.TransactionRepository.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
}

// NewTransactionRepository creates an empty in-memory transaction repository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{transactions: make(map[string]domain.Transaction)}
}

// Create adds a new transaction document.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transactions[transaction.ID]; exists {
		return util.ErrDuplicateEntry
	}
	r.transactions[transaction.ID] = *transaction
	return nil
}

// GetByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &transaction, nil
}

// Update rewrites a transaction's mutable fields.
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.transactions[transaction.ID]
	if !ok {
		return util.ErrNotFound
	}
	updated := *transaction
	updated.UID = existing.UID
	updated.Created = existing.Created
	r.transactions[transaction.ID] = updated
	return nil
}

// Delete removes a transaction document.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.transactions, id)
	return nil
}

// ListByUID retrieves all transactions owned by a user, date descending.
func (r *TransactionRepository) ListByUID(ctx context.Context, uid string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transactions := []domain.Transaction{}
	for _, t := range r.transactions {
		if t.UID == uid {
			transactions = append(transactions, t)
		}
	}
	sortByDateDesc(transactions)
	return transactions, nil
}

// ListByWalletID retrieves all transactions referencing a wallet, date descending.
func (r *TransactionRepository) ListByWalletID(ctx context.Context, walletID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transactions := []domain.Transaction{}
	for _, t := range r.transactions {
		if t.WalletID == walletID {
			transactions = append(transactions, t)
		}
	}
	sortByDateDesc(transactions)
	return transactions, nil
}

func sortByDateDesc(transactions []domain.Transaction) {
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Created.After(transactions[j].Created)
		}
		return transactions[i].Date.After(transactions[j].Date)
	})
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
