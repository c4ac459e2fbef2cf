package services

import (
	"testing"

	"catatuang/internal/models"
	"catatuang/internal/testutil"
)

func TestFindOrCreateByTelegram(t *testing.T) {
	t.Run("first_contact_seeds_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		user, err := svc.FindOrCreateByTelegram(987654321, "Budi", "Santoso", "budisan")
		testutil.AssertNoError(t, err)

		if user.FirstName != "Budi" {
			t.Errorf("expected first name Budi, got %q", user.FirstName)
		}

		var accounts int64
		if err := db.Model(&models.Account{}).Where("user_id = ?", user.ID).Count(&accounts).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if accounts != int64(len(models.DefaultAccounts)) {
			t.Errorf("expected %d seeded accounts, got %d", len(models.DefaultAccounts), accounts)
		}

		var categories int64
		if err := db.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&categories).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if categories != int64(len(models.DefaultCategories)) {
			t.Errorf("expected %d seeded categories, got %d", len(models.DefaultCategories), categories)
		}
	})

	t.Run("second_contact_reuses_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		first, err := svc.FindOrCreateByTelegram(555000111, "Sari", "", "")
		testutil.AssertNoError(t, err)

		again, err := svc.FindOrCreateByTelegram(555000111, "Sari", "", "")
		testutil.AssertNoError(t, err)
		if again.ID != first.ID {
			t.Fatalf("expected the same user, got %s and %s", first.ID, again.ID)
		}

		var users int64
		if err := db.Model(&models.User{}).Where("telegram_id = ?", 555000111).Count(&users).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if users != 1 {
			t.Errorf("expected one user, got %d", users)
		}
	})

	t.Run("profile_fields_refresh", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		created, err := svc.FindOrCreateByTelegram(777000222, "Dewi", "", "dewi_old")
		testutil.AssertNoError(t, err)

		updated, err := svc.FindOrCreateByTelegram(777000222, "Dewi", "Lestari", "dewi_new")
		testutil.AssertNoError(t, err)
		if updated.ID != created.ID {
			t.Fatal("expected the same user")
		}

		fresh, err := svc.GetByID(created.ID)
		testutil.AssertNoError(t, err)
		if fresh.LastName != "Lestari" || fresh.TelegramUsername != "dewi_new" {
			t.Errorf("expected refreshed profile, got %q %q", fresh.LastName, fresh.TelegramUsername)
		}
	})
}

func TestGetByTelegramID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db, NewCategoryService(db))

	_, err := svc.GetByTelegramID(424242)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")

	created, err := svc.FindOrCreateByTelegram(424242, "Agus", "", "")
	testutil.AssertNoError(t, err)

	found, err := svc.GetByTelegramID(424242)
	testutil.AssertNoError(t, err)
	if found.ID != created.ID {
		t.Errorf("expected user %s, got %s", created.ID, found.ID)
	}
}
