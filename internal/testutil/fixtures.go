package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"catatuang/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique Telegram ID.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	telegramID := 100000 + n
	user := &models.User{
		TelegramID: &telegramID,
		FirstName:  fmt.Sprintf("User%d", n),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an active non-default cash account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, decimal.Zero)
}

// CreateTestAccountWithBalance creates an active cash account with the given balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     models.AccountTypeCash,
		Balance:  balance,
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type with canonical
// and localized names.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType, name, nameID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Type:   categoryType,
		Name:   name,
		NameID: nameID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and amount.
// It inserts the row directly without touching account balances.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, txType models.TransactionType, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		AccountID: accountID,
		Type:      txType,
		Amount:    amount,
		Date:      time.Now().UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
