package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// GetOrCreatePrimary returns the user's default active account.
//
// Resolution order: existing default+active account; otherwise the oldest
// active account, promoted to default; otherwise a fresh zero-balance
// "Main" cash account. The whole sequence runs in one database
// transaction, and a partial unique index on (user_id) WHERE is_default
// AND is_active makes a racing second writer fail loudly instead of
// leaving two primaries behind.
func (s *accountService) GetOrCreatePrimary(userID string) (*models.Account, error) {
	var account models.Account

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND is_default = ? AND is_active = ?", userID, true, true).
			First(&account).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Promote the oldest active account if one exists.
		err = tx.Where("user_id = ? AND is_active = ?", userID, true).
			Order("created_at ASC, id ASC").
			First(&account).Error
		if err == nil {
			if err := tx.Model(&account).Update("is_default", true).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			account.IsDefault = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		account = models.Account{
			UserID:    userID,
			Name:      "Main",
			Type:      models.AccountTypeCash,
			Icon:      "💰",
			Balance:   decimal.Zero,
			IsDefault: true,
			IsActive:  true,
		}
		if err := tx.Create(&account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByID retrieves an active account by ID for a specific user.
func (s *accountService) GetByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", accountID, userID, true).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// ListActive retrieves the user's active accounts, oldest first.
func (s *accountService) ListActive(userID string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC, id ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// TotalBalance sums the balances of all active accounts. The sum stays
// in exact decimal arithmetic end to end.
func (s *accountService) TotalBalance(userID string) (*BalanceSummary, error) {
	accounts, err := s.ListActive(userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range accounts {
		total = total.Add(accounts[i].Balance)
	}
	return &BalanceSummary{Accounts: accounts, Total: total}, nil
}

// ApplyDelta applies a transaction's balance effect: income increments,
// expense decrements, transfer moves the amount from the source to the
// destination account. Must run in the same gorm transaction as the
// transaction row insert.
func (s *accountService) ApplyDelta(tx *gorm.DB, txn *models.Transaction) error {
	switch txn.Type {
	case models.TransactionTypeIncome:
		return s.adjustBalance(tx, txn.AccountID, txn.Amount)
	case models.TransactionTypeExpense:
		return s.adjustBalance(tx, txn.AccountID, txn.Amount.Neg())
	case models.TransactionTypeTransfer:
		if txn.ToAccountID == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer requires a destination account")
		}
		if err := s.adjustBalance(tx, txn.AccountID, txn.Amount.Neg()); err != nil {
			return err
		}
		return s.adjustBalance(tx, *txn.ToAccountID, txn.Amount)
	default:
		return apperrors.ErrInvalidTransactionType
	}
}

// ReverseDelta undoes ApplyDelta exactly. Must run in the same gorm
// transaction as the transaction row delete.
func (s *accountService) ReverseDelta(tx *gorm.DB, txn *models.Transaction) error {
	switch txn.Type {
	case models.TransactionTypeIncome:
		return s.adjustBalance(tx, txn.AccountID, txn.Amount.Neg())
	case models.TransactionTypeExpense:
		return s.adjustBalance(tx, txn.AccountID, txn.Amount)
	case models.TransactionTypeTransfer:
		if txn.ToAccountID == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer requires a destination account")
		}
		if err := s.adjustBalance(tx, txn.AccountID, txn.Amount); err != nil {
			return err
		}
		return s.adjustBalance(tx, *txn.ToAccountID, txn.Amount.Neg())
	default:
		return apperrors.ErrInvalidTransactionType
	}
}

// adjustBalance increments the account balance by delta on the SQL side.
// The relative update serializes concurrent deltas on the same row at
// the store, closing the read-modify-write lost-update window.
func (s *accountService) adjustBalance(tx *gorm.DB, accountID string, delta decimal.Decimal) error {
	result := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
