// internal/service/account.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"salapi-backend/internal/auth"
	"salapi-backend/internal/domain"
	"salapi-backend/internal/imagestore"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"
)

// AccountService handles registration, login, profile maintenance and full
// account teardown against the auth provider and the profile store.
type AccountService struct {
	provider     auth.Provider
	tokens       *auth.TokenManager
	users        repository.UserRepository
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	images       imagestore.Store
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	provider auth.Provider,
	tokens *auth.TokenManager,
	users repository.UserRepository,
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	images imagestore.Store,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		provider:     provider,
		tokens:       tokens,
		users:        users,
		wallets:      wallets,
		transactions: transactions,
		images:       images,
		logger:       logger,
	}
}

// Register creates an identity and its profile document, then sends the
// verification email. The new account cannot log in until verified.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.UserProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrInvalidInput)
	}

	identity, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile := domain.NewUserProfile(identity.UID, name, identity.Email)
	if err := s.users.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if err := s.provider.SendVerificationEmail(ctx, identity.UID); err != nil {
		// Registration already succeeded; the user can request a resend.
		s.logger.Error("Failed to send verification email", "uid", identity.UID, "error", err)
	}

	return profile, nil
}

// Login verifies the credential and returns a signed session token with the
// profile. Unverified accounts are rejected and get a fresh verification
// email instead.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	if !identity.EmailVerified {
		if err := s.provider.SendVerificationEmail(ctx, identity.UID); err != nil {
			s.logger.Error("Failed to resend verification email", "uid", identity.UID, "error", err)
		}
		return "", nil, auth.NewError(auth.CodeEmailNotVerified)
	}

	profile, err := s.users.GetByUID(ctx, identity.UID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return "", nil, util.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("get profile: %w", err)
	}

	// The profile's verified flag lags the identity's until first login.
	if !profile.EmailVerified {
		verified := true
		if err := s.users.Update(ctx, identity.UID, domain.UserPatch{EmailVerified: &verified}); err != nil {
			s.logger.Error("Failed to mark profile verified", "uid", identity.UID, "error", err)
		} else {
			profile.EmailVerified = true
		}
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return token, profile, nil
}

// VerifyEmail consumes a verification token from the emailed link.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) error {
	identity, err := s.provider.VerifyEmail(ctx, token)
	if err != nil {
		return err
	}

	verified := true
	if err := s.users.Update(ctx, identity.UID, domain.UserPatch{EmailVerified: &verified}); err != nil {
		s.logger.Error("Failed to mark profile verified", "uid", identity.UID, "error", err)
	}
	return nil
}

// ResendVerification issues a fresh verification email for the identity.
func (s *AccountService) ResendVerification(ctx context.Context, uid string) error {
	return s.provider.SendVerificationEmail(ctx, uid)
}

// ChangePassword re-proves the current password, then sets the new one.
func (s *AccountService) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	if err := s.provider.Reauthenticate(ctx, uid, currentPassword); err != nil {
		return err
	}
	return s.provider.ChangePassword(ctx, uid, newPassword)
}

// GetProfile retrieves the user's profile document.
func (s *AccountService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	profile, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile patches the profile's name and image. An attached image is
// uploaded first; an upload failure aborts the update.
func (s *AccountService) UpdateProfile(ctx context.Context, uid, name string, image *imagestore.File) (*domain.UserProfile, error) {
	var patch domain.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if image != nil {
		url, err := s.images.Upload(ctx, *image, "users")
		if err != nil {
			if util.IsError(err, util.ErrInvalidImageType) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", util.ErrImageUpload, err)
		}
		patch.Image = &url
	}

	if err := s.users.Update(ctx, uid, patch); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetProfile(ctx, uid)
}

// DeleteAccount removes everything owned by uid in dependency order:
// transactions first, then wallets, then the profile, and the identity last.
// Each step fails fast; there is no rollback, so a partial failure leaves the
// account in a retryable half-deleted state with the identity intact.
func (s *AccountService) DeleteAccount(ctx context.Context, uid string) error {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("delete account %s: list transactions: %w", uid, err)
	}
	for _, t := range transactions {
		if err := s.transactions.Delete(ctx, t.ID); err != nil && !util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("delete account %s: delete transaction %s: %w", uid, t.ID, err)
		}
	}

	wallets, err := s.wallets.ListByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("delete account %s: list wallets: %w", uid, err)
	}
	for _, w := range wallets {
		if err := s.wallets.Delete(ctx, w.ID); err != nil && !util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("delete account %s: delete wallet %s: %w", uid, w.ID, err)
		}
	}

	if err := s.users.Delete(ctx, uid); err != nil && !util.IsError(err, util.ErrNotFound) {
		return fmt.Errorf("delete account %s: delete profile: %w", uid, err)
	}

	if err := s.provider.DeleteIdentity(ctx, uid); err != nil {
		return fmt.Errorf("delete account %s: delete identity: %w", uid, err)
	}

	s.logger.Info("Account deleted", "uid", uid, "transactions", len(transactions), "wallets", len(wallets))
	return nil
}
