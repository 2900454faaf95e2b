// internal/service/helpers_test.go
package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// seedWallet creates a wallet document directly in the repository.
func seedWallet(t *testing.T, wallets *memory.WalletRepository, uid, name string) *domain.Wallet {
	t.Helper()
	wallet := domain.NewWallet(uid, name, nil)
	require.NoError(t, wallets.Create(context.Background(), wallet))
	return wallet
}

// seedTransaction creates a transaction document directly in the repository,
// without touching any wallet balance.
func seedTransaction(t *testing.T, transactions *memory.TransactionRepository, uid, walletID string, txType domain.TransactionType, amount string, on time.Time) *domain.Transaction {
	t.Helper()
	transaction := domain.NewTransaction(uid, walletID, txType, dec(amount), on)
	require.NoError(t, transactions.Create(context.Background(), transaction))
	return transaction
}
