package bot

import (
	"testing"

	"github.com/shopspring/decimal"

	"catatuang/internal/models"
	"catatuang/internal/period"
	"catatuang/internal/services"
	"catatuang/internal/session"
	"catatuang/internal/testutil"
	"gorm.io/gorm"
)

func newTestResolver(db *gorm.DB) (*DeleteResolver, *session.MessageIndex, services.TransactionServicer) {
	index := session.NewMessageIndex()
	txSvc := services.NewTransactionService(db, services.NewAccountService(db), services.NewCategoryService(db), period.NewClock(7))
	return NewDeleteResolver(index, txSvc), index, txSvc
}

func TestDeleteResolver(t *testing.T) {
	t.Run("resolves_via_message_index", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		resolver, index, _ := newTestResolver(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		txn := testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, decimal.NewFromInt(5000))

		index.Register(42, 7, txn.ID)

		deleted, err := resolver.Resolve(user.ID, 42, 7, "irrelevant text")
		testutil.AssertNoError(t, err)
		if deleted == nil || deleted.ID != txn.ID {
			t.Fatalf("expected %s deleted, got %v", txn.ID, deleted)
		}

		// The link is gone with the transaction.
		if _, ok := index.Lookup(42, 7); ok {
			t.Error("expected message link cleared")
		}
	})

	t.Run("resolves_via_ref_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		resolver, _, _ := newTestResolver(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		txn := testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, decimal.NewFromInt(5000))

		text := "✅ Transaksi dicatat!\n🆔 " + RefToken(txn.ID)
		deleted, err := resolver.Resolve(user.ID, 42, 8, text)
		testutil.AssertNoError(t, err)
		if deleted == nil || deleted.ID != txn.ID {
			t.Fatalf("expected %s deleted, got %v", txn.ID, deleted)
		}
	})

	t.Run("resolves_via_raw_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		resolver, _, txSvc := newTestResolver(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		result, err := txSvc.Create(services.CreateTransactionParams{
			UserID:    user.ID,
			AccountID: account.ID,
			Type:      models.TransactionTypeExpense,
			Amount:    decimal.NewFromInt(15000),
			RawInput:  "kopi 15rb",
		})
		testutil.AssertNoError(t, err)

		deleted, err := resolver.Resolve(user.ID, 42, 9, "kopi 15rb")
		testutil.AssertNoError(t, err)
		if deleted == nil || deleted.ID != result.Transaction.ID {
			t.Fatalf("expected %s deleted, got %v", result.Transaction.ID, deleted)
		}
	})

	t.Run("nothing_matches", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		resolver, _, _ := newTestResolver(db)
		user := testutil.CreateTestUser(t, db)

		deleted, err := resolver.Resolve(user.ID, 42, 10, "pesan lama")
		testutil.AssertNoError(t, err)
		if deleted != nil {
			t.Errorf("expected nil, got %v", deleted)
		}
	})
}
