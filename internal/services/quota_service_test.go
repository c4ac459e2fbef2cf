package services

import (
	"testing"
	"time"

	"catatuang/internal/period"
	"catatuang/internal/testutil"
)

func TestReceiptQuota(t *testing.T) {
	t.Run("limit_reached_after_three_consumes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		clock := fixedClock()
		svc := NewQuotaService(db, clock, 100, 3)
		user := testutil.CreateTestUser(t, db)

		for i := 1; i <= 3; i++ {
			result, err := svc.ConsumeReceiptQuota(user.ID)
			testutil.AssertNoError(t, err)
			if !result.OK {
				t.Fatalf("consume %d should succeed", i)
			}
			if result.Used != i {
				t.Errorf("expected used %d, got %d", i, result.Used)
			}
		}

		fourth, err := svc.ConsumeReceiptQuota(user.ID)
		testutil.AssertNoError(t, err)
		if fourth.OK {
			t.Error("fourth consume should be rejected")
		}
		if fourth.Remaining != 0 {
			t.Errorf("expected remaining 0, got %d", fourth.Remaining)
		}
		if fourth.Used != 3 {
			t.Errorf("expected used still 3, got %d", fourth.Used)
		}
	})

	t.Run("get_never_consumes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewQuotaService(db, fixedClock(), 100, 3)
		user := testutil.CreateTestUser(t, db)

		for i := 0; i < 10; i++ {
			result, err := svc.ReceiptQuota(user.ID)
			testutil.AssertNoError(t, err)
			if !result.OK || result.Used != 0 {
				t.Fatalf("expected untouched quota, got used=%d ok=%v", result.Used, result.OK)
			}
		}
	})

	t.Run("resets_on_next_civil_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		now := time.Date(2025, 6, 11, 5, 0, 0, 0, time.UTC)
		clock := period.NewClockAt(7, func() time.Time { return now })
		svc := NewQuotaService(db, clock, 100, 3)
		user := testutil.CreateTestUser(t, db)

		for i := 0; i < 3; i++ {
			result, err := svc.ConsumeReceiptQuota(user.ID)
			testutil.AssertNoError(t, err)
			if !result.OK {
				t.Fatalf("consume %d should succeed", i+1)
			}
		}

		blocked, err := svc.ConsumeReceiptQuota(user.ID)
		testutil.AssertNoError(t, err)
		if blocked.OK {
			t.Fatal("expected quota exhausted")
		}

		now = now.Add(24 * time.Hour)

		fresh, err := svc.ConsumeReceiptQuota(user.ID)
		testutil.AssertNoError(t, err)
		if !fresh.OK || fresh.Used != 1 {
			t.Errorf("expected fresh day counter, got used=%d ok=%v", fresh.Used, fresh.OK)
		}
	})
}

func TestChatQuota(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewQuotaService(db, fixedClock(), 2, 3)
	user := testutil.CreateTestUser(t, db)

	// Chat and receipt counters are independent.
	first, err := svc.ConsumeChatQuota(user.ID)
	testutil.AssertNoError(t, err)
	if !first.OK || first.Remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", first.Remaining)
	}

	receipt, err := svc.ReceiptQuota(user.ID)
	testutil.AssertNoError(t, err)
	if receipt.Used != 0 {
		t.Errorf("expected receipt counter untouched, got %d", receipt.Used)
	}

	second, err := svc.ConsumeChatQuota(user.ID)
	testutil.AssertNoError(t, err)
	if !second.OK {
		t.Fatal("second consume should succeed")
	}

	third, err := svc.ConsumeChatQuota(user.ID)
	testutil.AssertNoError(t, err)
	if third.OK {
		t.Error("third consume should be rejected at limit 2")
	}
}
