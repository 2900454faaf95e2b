// internal/service/ledger.go
package service

import (
	"context"
	"log/slog"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"

	"github.com/shopspring/decimal"
)

// Ledger applies and reverses a single transaction's effect on its owning
// wallet's cached balance fields.
type Ledger struct {
	wallets repository.WalletRepository
	logger  *slog.Logger
}

// NewLedger creates a Ledger over the given wallet repository.
func NewLedger(wallets repository.WalletRepository, logger *slog.Logger) *Ledger {
	return &Ledger{wallets: wallets, logger: logger}
}

// ApplyEffect adjusts the wallet's amount/totalIncome/totalExpenses fields
// by the effect of one transaction, as a single atomic server-side increment.
// With reversing set, the effect is undone instead of applied.
//
// A wallet that no longer exists is a silent no-op: the transaction mutation
// driving this call must still proceed (the wallet may be mid-cascade).
// Increment failures are logged, not surfaced; balance correction is
// best-effort against this backing store.
func (l *Ledger) ApplyEffect(ctx context.Context, walletID string, amount decimal.Decimal, txType domain.TransactionType, reversing bool) {
	amountDelta, incomeDelta, expenseDelta := ledgerDeltas(amount, txType, reversing)

	err := l.wallets.ApplyLedgerEffect(ctx, walletID, amountDelta, incomeDelta, expenseDelta)
	if err == nil {
		return
	}
	if util.IsError(err, util.ErrNotFound) {
		l.logger.Warn("Wallet not found, skipping balance update", "walletId", walletID)
		return
	}
	l.logger.Error("Failed to update wallet balance", "walletId", walletID, "error", err)
}

// ledgerDeltas computes the increments a transaction effect contributes to
// the wallet's cached fields. amount is always positive; the transaction
// type carries the sign, and reversing inverts it.
func ledgerDeltas(amount decimal.Decimal, txType domain.TransactionType, reversing bool) (amountDelta, incomeDelta, expenseDelta decimal.Decimal) {
	signed := amount
	if reversing {
		signed = signed.Neg()
	}

	if txType == domain.TransactionTypeIncome {
		return signed, signed, decimal.Zero
	}
	return signed.Neg(), decimal.Zero, signed
}
