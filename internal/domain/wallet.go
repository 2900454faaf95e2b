// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet represents a named account holding a cached running balance.
// Amount must equal TotalIncome - TotalExpenses, which must equal the sum of
// signed amounts of all transactions referencing this wallet after any
// mutation completes.
type Wallet struct {
	ID            string          `db:"id" json:"id"`
	UID           string          `db:"uid" json:"uid"`
	Name          string          `db:"name" json:"name"`
	Image         *string         `db:"image" json:"image,omitempty"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	TotalIncome   decimal.Decimal `db:"total_income" json:"totalIncome"`
	TotalExpenses decimal.Decimal `db:"total_expenses" json:"totalExpenses"`
	Created       time.Time       `db:"created" json:"created"`
}

// NewWallet creates a new Wallet instance with zeroed balance fields.
func NewWallet(uid, name string, image *string) *Wallet {
	return &Wallet{
		ID:            uuid.NewString(),
		UID:           uid,
		Name:          name,
		Image:         image,
		Amount:        decimal.Zero,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Created:       time.Now().UTC(),
	}
}

// WalletPatch describes an update to a wallet's mutable fields.
// Nil fields are left untouched.
type WalletPatch struct {
	Name   *string
	Image  *string
	Amount *decimal.Decimal
}
