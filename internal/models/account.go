package models

import "github.com/shopspring/decimal"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCash    AccountType = "cash"
	AccountTypeBank    AccountType = "bank"
	AccountTypeEWallet AccountType = "ewallet"
)

// Account represents one balance bucket owned by a user.
//
// Invariant: each user has at most one account with is_default AND
// is_active set, enforced by a partial unique index (see migrations).
// Accounts are never hard-deleted; deactivation flips is_active.
type Account struct {
	Base
	UserID    string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string          `gorm:"not null" json:"name"`
	Type      AccountType     `gorm:"not null" json:"type"`
	Icon      string          `json:"icon"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
	IsDefault bool            `gorm:"not null;default:false" json:"is_default"`
	IsActive  bool            `gorm:"not null;default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
