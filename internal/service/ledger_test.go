// internal/service/ledger_test.go
package service

import (
	"context"
	"testing"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerDeltas(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		txType    domain.TransactionType
		reversing bool
		wantAmt   string
		wantInc   string
		wantExp   string
	}{
		{"apply income", "100", domain.TransactionTypeIncome, false, "100", "100", "0"},
		{"reverse income", "100", domain.TransactionTypeIncome, true, "-100", "-100", "0"},
		{"apply expense", "40", domain.TransactionTypeExpense, false, "-40", "0", "40"},
		{"reverse expense", "40", domain.TransactionTypeExpense, true, "40", "0", "-40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, inc, exp := ledgerDeltas(dec(tt.amount), tt.txType, tt.reversing)
			assert.True(t, amt.Equal(dec(tt.wantAmt)), "amount delta: got %s", amt)
			assert.True(t, inc.Equal(dec(tt.wantInc)), "income delta: got %s", inc)
			assert.True(t, exp.Equal(dec(tt.wantExp)), "expense delta: got %s", exp)
		})
	}
}

// The wallet's cached fields must always equal the fold over the applied
// effects: amount is the signed sum, the totals are the per-type sums.
func TestLedgerBalanceMatchesEffects(t *testing.T) {
	ctx := context.Background()
	wallets := memory.NewWalletRepository()
	ledger := NewLedger(wallets, testLogger())
	wallet := seedWallet(t, wallets, "u1", "Cash")

	effects := []struct {
		amount    string
		txType    domain.TransactionType
		reversing bool
	}{
		{"120.50", domain.TransactionTypeIncome, false},
		{"45.25", domain.TransactionTypeExpense, false},
		{"10.00", domain.TransactionTypeIncome, false},
		{"10.00", domain.TransactionTypeIncome, true}, // undo the previous income
		{"5.75", domain.TransactionTypeExpense, false},
	}

	amount, income, expense := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range effects {
		ledger.ApplyEffect(ctx, wallet.ID, dec(e.amount), e.txType, e.reversing)
		amt, inc, exp := ledgerDeltas(dec(e.amount), e.txType, e.reversing)
		amount = amount.Add(amt)
		income = income.Add(inc)
		expense = expense.Add(exp)
	}

	got, err := wallets.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(amount), "amount: got %s want %s", got.Amount, amount)
	assert.True(t, got.TotalIncome.Equal(income), "total income: got %s want %s", got.TotalIncome, income)
	assert.True(t, got.TotalExpenses.Equal(expense), "total expenses: got %s want %s", got.TotalExpenses, expense)

	// 120.50 - 45.25 - 5.75 = 69.50
	assert.True(t, got.Amount.Equal(dec("69.50")))
}

func TestLedgerMissingWalletIsNoOp(t *testing.T) {
	ctx := context.Background()
	wallets := memory.NewWalletRepository()
	ledger := NewLedger(wallets, testLogger())

	// Must not panic or surface an error path; the caller never sees this.
	ledger.ApplyEffect(ctx, "gone", dec("50"), domain.TransactionTypeIncome, false)

	all, err := wallets.ListByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, all)
}
