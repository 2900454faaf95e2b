// internal/service/wallet.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/imagestore"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"

	"github.com/shopspring/decimal"
)

// WalletInput carries the caller-supplied fields of a wallet mutation.
type WalletInput struct {
	Name   string
	Amount *decimal.Decimal
	Image  *imagestore.File
}

// WalletService handles create/update/delete of wallet documents.
type WalletService struct {
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	images       imagestore.Store
	logger       *slog.Logger
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	images imagestore.Store,
	logger *slog.Logger,
) *WalletService {
	return &WalletService{
		wallets:      wallets,
		transactions: transactions,
		images:       images,
		logger:       logger,
	}
}

// Create writes a new wallet for uid with zeroed balance fields. An attached
// image is uploaded first; an upload failure aborts before any write.
func (s *WalletService) Create(ctx context.Context, uid string, in WalletInput) (*domain.Wallet, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", util.ErrInvalidInput)
	}

	imageURL, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	wallet := domain.NewWallet(uid, in.Name, imageURL)
	if err := s.wallets.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return wallet, nil
}

// Update patches a wallet's name/image/amount fields.
func (s *WalletService) Update(ctx context.Context, uid, id string, in WalletInput) (*domain.Wallet, error) {
	if _, err := s.owned(ctx, uid, id); err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	patch := domain.WalletPatch{Image: imageURL, Amount: in.Amount}
	if in.Name != "" {
		patch.Name = &in.Name
	}
	if err := s.wallets.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update wallet %s: %w", id, err)
	}

	return s.wallets.GetByID(ctx, id)
}

// Delete removes a wallet and every transaction referencing it, returning
// the number of transactions removed. The cascade is not atomic across
// documents: a failure partway leaves orphan transactions behind, and the
// returned count reflects what was actually deleted.
func (s *WalletService) Delete(ctx context.Context, uid, id string) (int, error) {
	if _, err := s.owned(ctx, uid, id); err != nil {
		return 0, err
	}

	transactions, err := s.transactions.ListByWalletID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete wallet %s: failed to list transactions: %w", id, err)
	}

	deleted := 0
	for _, t := range transactions {
		if err := s.transactions.Delete(ctx, t.ID); err != nil {
			if util.IsError(err, util.ErrNotFound) {
				continue
			}
			return deleted, fmt.Errorf("delete wallet %s: failed to delete transaction %s: %w", id, t.ID, err)
		}
		deleted++
	}

	if err := s.wallets.Delete(ctx, id); err != nil {
		return deleted, fmt.Errorf("delete wallet %s: %w", id, err)
	}
	return deleted, nil
}

// Get retrieves one of the user's wallets.
func (s *WalletService) Get(ctx context.Context, uid, id string) (*domain.Wallet, error) {
	return s.owned(ctx, uid, id)
}

// List retrieves all of the user's wallets, newest first.
func (s *WalletService) List(ctx context.Context, uid string) ([]domain.Wallet, error) {
	wallets, err := s.wallets.ListByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

func (s *WalletService) owned(ctx context.Context, uid, id string) (*domain.Wallet, error) {
	wallet, err := s.wallets.GetByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet %s: %w", id, err)
	}
	if wallet.UID != uid {
		return nil, util.ErrForbidden
	}
	return wallet, nil
}

func (s *WalletService) uploadImage(ctx context.Context, file *imagestore.File) (*string, error) {
	if file == nil {
		return nil, nil
	}
	url, err := s.images.Upload(ctx, *file, "wallets")
	if err != nil {
		if util.IsError(err, util.ErrInvalidImageType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", util.ErrImageUpload, err)
	}
	return &url, nil
}
