// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a financial transaction.
// The sign of a transaction is carried by its type; Amount is always positive.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single signed monetary entry tied to exactly one wallet.
type Transaction struct {
	ID             string          `db:"id" json:"id"`
	UID            string          `db:"uid" json:"uid"`
	WalletID       string          `db:"wallet_id" json:"walletId"`
	Type           TransactionType `db:"type" json:"type"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	Category       string          `db:"category" json:"category,omitempty"`
	CustomCategory string          `db:"custom_category" json:"customCategory,omitempty"`
	Date           time.Time       `db:"date" json:"date"`
	Description    string          `db:"description" json:"description,omitempty"`
	Image          *string         `db:"image" json:"image,omitempty"`
	Created        time.Time       `db:"created" json:"created"`
}

// NewTransaction creates a new Transaction instance with a server-side
// creation timestamp.
func NewTransaction(uid, walletID string, txType TransactionType, amount decimal.Decimal, date time.Time) *Transaction {
	return &Transaction{
		ID:       uuid.NewString(),
		UID:      uid,
		WalletID: walletID,
		Type:     txType,
		Amount:   amount,
		Date:     date,
		Created:  time.Now().UTC(),
	}
}

// SignedAmount returns the delta this transaction contributes to its wallet's
// cached balance: +Amount for income, -Amount for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// DisplayCategory resolves the category label shown on statements and
// exports: the custom category wins when set (the "others" case), then the
// regular category, then a fixed fallback.
func (t *Transaction) DisplayCategory() string {
	if t.CustomCategory != "" {
		return t.CustomCategory
	}
	if t.Category != "" {
		return t.Category
	}
	return "Uncategorized"
}
