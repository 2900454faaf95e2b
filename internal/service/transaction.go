// internal/service/transaction.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/imagestore"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"

	"github.com/shopspring/decimal"
)

// TransactionInput carries the caller-supplied fields of a transaction
// mutation. Image, when set, is a local file that must be uploaded before
// any document is written.
type TransactionInput struct {
	WalletID       string
	Type           domain.TransactionType
	Amount         decimal.Decimal
	Category       string
	CustomCategory string
	Description    string
	Date           time.Time
	Image          *imagestore.File
}

// TransactionService orchestrates create/update/delete of transaction
// documents, pairing every mutation with a ledger call.
type TransactionService struct {
	transactions repository.TransactionRepository
	wallets      repository.WalletRepository
	ledger       *Ledger
	images       imagestore.Store
	logger       *slog.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	transactions repository.TransactionRepository,
	wallets repository.WalletRepository,
	ledger *Ledger,
	images imagestore.Store,
	logger *slog.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		wallets:      wallets,
		ledger:       ledger,
		images:       images,
		logger:       logger,
	}
}

// Create validates and writes a new transaction for uid, then applies its
// effect to the owning wallet. An attached image is uploaded first; if the
// upload fails nothing is written.
func (s *TransactionService) Create(ctx context.Context, uid string, in TransactionInput) (*domain.Transaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	wallet, err := s.ownedWallet(ctx, uid, in.WalletID)
	if err != nil {
		return nil, err
	}

	if in.Type == domain.TransactionTypeExpense && in.Amount.GreaterThan(wallet.Amount) {
		return nil, util.ErrInsufficientBalance
	}

	imageURL, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	transaction := domain.NewTransaction(uid, in.WalletID, in.Type, in.Amount, in.Date)
	transaction.Category = in.Category
	transaction.CustomCategory = in.CustomCategory
	transaction.Description = in.Description
	transaction.Image = imageURL

	if err := s.transactions.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.ledger.ApplyEffect(ctx, in.WalletID, in.Amount, in.Type, false)

	return transaction, nil
}

// Update rewrites an existing transaction: the old effect is reversed, the
// new effect applied, then the document written. The reversal and the
// document write are separate store operations; a crash between them leaves
// the wallet adjusted ahead of the record until reconciled.
func (s *TransactionService) Update(ctx context.Context, uid, id string, in TransactionInput) (*domain.Transaction, error) {
	old, err := s.ownedTransaction(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(in); err != nil {
		return nil, err
	}

	wallet, err := s.ownedWallet(ctx, uid, in.WalletID)
	if err != nil {
		return nil, err
	}

	if in.Type == domain.TransactionTypeExpense {
		// Reversing the old transaction frees (or consumes) part of the
		// wallet's balance before the new amount is checked.
		available := wallet.Amount
		if old.WalletID == in.WalletID {
			available = available.Sub(old.SignedAmount())
		}
		if in.Amount.GreaterThan(available) {
			return nil, util.ErrInsufficientBalance
		}
	}

	imageURL, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	s.ledger.ApplyEffect(ctx, old.WalletID, old.Amount, old.Type, true)
	s.ledger.ApplyEffect(ctx, in.WalletID, in.Amount, in.Type, false)

	updated := *old
	updated.WalletID = in.WalletID
	updated.Type = in.Type
	updated.Amount = in.Amount
	updated.Category = in.Category
	updated.CustomCategory = in.CustomCategory
	updated.Description = in.Description
	updated.Date = in.Date
	if imageURL != nil {
		updated.Image = imageURL
	}

	if err := s.transactions.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update transaction %s: %w", id, err)
	}

	return &updated, nil
}

// Delete reverses a transaction's effect on its wallet and removes the
// document.
func (s *TransactionService) Delete(ctx context.Context, uid, id string) error {
	old, err := s.ownedTransaction(ctx, uid, id)
	if err != nil {
		return err
	}

	s.ledger.ApplyEffect(ctx, old.WalletID, old.Amount, old.Type, true)

	if err := s.transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// Get retrieves one of the user's transactions.
func (s *TransactionService) Get(ctx context.Context, uid, id string) (*domain.Transaction, error) {
	return s.ownedTransaction(ctx, uid, id)
}

// ListByUID retrieves all of the user's transactions, date descending.
func (s *TransactionService) ListByUID(ctx context.Context, uid string) ([]domain.Transaction, error) {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// ListByWallet retrieves the user's transactions for one wallet, date
// descending. Orphan transactions referencing a deleted wallet are excluded
// by construction (the wallet lookup fails first).
func (s *TransactionService) ListByWallet(ctx context.Context, uid, walletID string) ([]domain.Transaction, error) {
	if _, err := s.ownedWallet(ctx, uid, walletID); err != nil {
		return nil, err
	}
	transactions, err := s.transactions.ListByWalletID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	return transactions, nil
}

// Search filters the user's transactions by a case-insensitive match on
// description, category or type.
func (s *TransactionService) Search(ctx context.Context, uid, query string) ([]domain.Transaction, error) {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("search transactions: %w", err)
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return transactions, nil
	}

	matched := transactions[:0]
	for _, t := range transactions {
		if strings.Contains(strings.ToLower(t.Description), query) ||
			strings.Contains(strings.ToLower(t.Category), query) ||
			strings.Contains(strings.ToLower(t.CustomCategory), query) ||
			strings.Contains(strings.ToLower(string(t.Type)), query) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (s *TransactionService) ownedWallet(ctx context.Context, uid, walletID string) (*domain.Wallet, error) {
	wallet, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet %s: %w", walletID, err)
	}
	if wallet.UID != uid {
		return nil, util.ErrForbidden
	}
	return wallet, nil
}

func (s *TransactionService) ownedTransaction(ctx context.Context, uid, id string) (*domain.Transaction, error) {
	transaction, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	if transaction.UID != uid {
		return nil, util.ErrForbidden
	}
	return transaction, nil
}

// uploadImage stores a local image file if one was attached and returns its
// address. It runs before any document write so an upload failure aborts
// the mutation without partial state.
func (s *TransactionService) uploadImage(ctx context.Context, file *imagestore.File) (*string, error) {
	if file == nil {
		return nil, nil
	}
	url, err := s.images.Upload(ctx, *file, "transactions")
	if err != nil {
		if util.IsError(err, util.ErrInvalidImageType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", util.ErrImageUpload, err)
	}
	return &url, nil
}

func validateInput(in TransactionInput) error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", util.ErrInvalidInput, in.Type)
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", util.ErrInvalidInput)
	}
	if in.WalletID == "" {
		return fmt.Errorf("%w: wallet is required", util.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", util.ErrInvalidInput)
	}
	return nil
}
