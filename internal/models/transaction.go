package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction is a ledger entry. Amount is always stored positive;
// direction is encoded by Type. Date is the user-meaningful effective
// date (may be backdated), while CreatedAt is the immutable system
// timestamp used for "last transaction" ordering.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   string          `gorm:"type:uuid;not null" json:"account_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description string          `json:"description"`
	RawInput    string          `json:"raw_input,omitempty"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	// For transfers
	ToAccountID *string `gorm:"type:uuid" json:"to_account_id,omitempty"`

	Account   Account   `gorm:"foreignKey:AccountID" json:"account"`
	ToAccount *Account  `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// SignedAmount returns the amount with the sign implied by the type:
// negative for expenses, positive for income, zero for transfers
// (which net out across the account pair).
func (t *Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeExpense:
		return t.Amount.Neg()
	case TransactionTypeIncome:
		return t.Amount
	default:
		return decimal.Zero
	}
}
