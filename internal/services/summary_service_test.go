package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"catatuang/internal/models"
	"catatuang/internal/period"
	"catatuang/internal/testutil"
)

// fixedClock pins "now" to 2025-06-11 12:00 local (UTC+7), a Wednesday.
func fixedClock() *period.Clock {
	now := time.Date(2025, 6, 11, 5, 0, 0, 0, time.UTC)
	return period.NewClockAt(7, func() time.Time { return now })
}

func TestSummary(t *testing.T) {
	t.Run("totals_income_and_expense_separately", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		clock := fixedClock()
		svc := NewSummaryService(db, clock)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		mid := time.Date(2025, 6, 10, 5, 0, 0, 0, time.UTC)
		for _, row := range []struct {
			txType models.TransactionType
			amount int64
		}{
			{models.TransactionTypeIncome, 5000000},
			{models.TransactionTypeExpense, 25000},
			{models.TransactionTypeExpense, 10000},
		} {
			txn := &models.Transaction{
				UserID:    user.ID,
				AccountID: account.ID,
				Type:      row.txType,
				Amount:    decimal.NewFromInt(row.amount),
				Date:      mid,
			}
			if err := db.Create(txn).Error; err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		start, end := clock.MonthRange(2025, 6)
		summary, err := svc.Summary(user.ID, start, end, DateFieldEffective)
		testutil.AssertNoError(t, err)

		if !summary.TotalIncome.Equal(decimal.NewFromInt(5000000)) {
			t.Errorf("expected income 5000000, got %s", summary.TotalIncome)
		}
		if !summary.TotalExpense.Equal(decimal.NewFromInt(35000)) {
			t.Errorf("expected expense 35000, got %s", summary.TotalExpense)
		}
		if summary.TransactionCount != 3 {
			t.Errorf("expected 3 transactions, got %d", summary.TransactionCount)
		}
	})

	t.Run("month_boundary_is_half_open_in_local_time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		clock := fixedClock()
		svc := NewSummaryService(db, clock)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		// 2025-06-01T00:00+07:00 exactly: first instant of June.
		juneStart := time.Date(2025, 5, 31, 17, 0, 0, 0, time.UTC)
		// One second earlier is still May.
		mayEnd := juneStart.Add(-time.Second)

		for _, date := range []time.Time{juneStart, mayEnd} {
			txn := &models.Transaction{
				UserID:    user.ID,
				AccountID: account.ID,
				Type:      models.TransactionTypeExpense,
				Amount:    decimal.NewFromInt(1000),
				Date:      date,
			}
			if err := db.Create(txn).Error; err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		june, err := svc.MonthSummary(user.ID, 2025, 6, DateFieldEffective)
		testutil.AssertNoError(t, err)
		if june.TransactionCount != 1 {
			t.Errorf("expected 1 June transaction, got %d", june.TransactionCount)
		}

		may, err := svc.MonthSummary(user.ID, 2025, 5, DateFieldEffective)
		testutil.AssertNoError(t, err)
		if may.TransactionCount != 1 {
			t.Errorf("expected 1 May transaction, got %d", may.TransactionCount)
		}
	})

	t.Run("date_field_selector_diverges_for_backdated_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		clock := fixedClock()
		svc := NewSummaryService(db, clock)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		// Recorded now, but effective back in January.
		txn := &models.Transaction{
			UserID:    user.ID,
			AccountID: account.ID,
			Type:      models.TransactionTypeExpense,
			Amount:    decimal.NewFromInt(9000),
			Date:      time.Date(2025, 1, 15, 5, 0, 0, 0, time.UTC),
		}
		if err := db.Create(txn).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		january, err := svc.MonthSummary(user.ID, 2025, 1, DateFieldEffective)
		testutil.AssertNoError(t, err)
		if january.TransactionCount != 1 {
			t.Errorf("expected backdated row in January by effective date, got %d", january.TransactionCount)
		}

		byCreated, err := svc.MonthSummary(user.ID, 2025, 1, DateFieldCreated)
		testutil.AssertNoError(t, err)
		if byCreated.TransactionCount != 0 {
			t.Errorf("expected no January rows by creation time, got %d", byCreated.TransactionCount)
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	clock := fixedClock()
	svc := NewSummaryService(db, clock)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID)
	food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense, "Food & Drinks", "Makan & Minum")
	transport := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense, "Transportation", "Transportasi")

	mid := time.Date(2025, 6, 10, 5, 0, 0, 0, time.UTC)
	rows := []struct {
		categoryID *string
		amount     int64
	}{
		{&food.ID, 30000},
		{&food.ID, 20000},
		{&transport.ID, 15000},
		{nil, 5000},
	}
	for _, row := range rows {
		txn := &models.Transaction{
			UserID:     user.ID,
			AccountID:  account.ID,
			CategoryID: row.categoryID,
			Type:       models.TransactionTypeExpense,
			Amount:     decimal.NewFromInt(row.amount),
			Date:       mid,
		}
		if err := db.Create(txn).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	breakdown, err := svc.CategoryBreakdown(user.ID, 2025, 6)
	testutil.AssertNoError(t, err)

	if len(breakdown) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(breakdown))
	}
	if breakdown[0].Category != "Makan & Minum" || !breakdown[0].Amount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected Makan & Minum 50000 first, got %s %s", breakdown[0].Category, breakdown[0].Amount)
	}
	if breakdown[1].Category != "Transportasi" {
		t.Errorf("expected Transportasi second, got %s", breakdown[1].Category)
	}
	if breakdown[2].Category != "Lainnya" || !breakdown[2].Amount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected Lainnya 5000 last, got %s %s", breakdown[2].Category, breakdown[2].Amount)
	}
}

func TestWeekCashflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	clock := fixedClock()
	svc := NewSummaryService(db, clock)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID)

	// Monday 2025-06-09 and Wednesday 2025-06-11 of the pinned week.
	monday := time.Date(2025, 6, 9, 3, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC)
	for _, row := range []struct {
		txType models.TransactionType
		amount int64
		date   time.Time
	}{
		{models.TransactionTypeExpense, 12000, monday},
		{models.TransactionTypeIncome, 100000, wednesday},
		{models.TransactionTypeExpense, 8000, wednesday},
	} {
		txn := &models.Transaction{
			UserID:    user.ID,
			AccountID: account.ID,
			Type:      row.txType,
			Amount:    decimal.NewFromInt(row.amount),
			Date:      row.date,
		}
		if err := db.Create(txn).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	cashflow, err := svc.WeekCashflow(user.ID, clock.Now())
	testutil.AssertNoError(t, err)

	if len(cashflow.Rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(cashflow.Rows))
	}
	if cashflow.Rows[0].DayKey != "2025-06-09" || cashflow.Rows[0].DayLabel != "Sen" {
		t.Errorf("expected week starting Sen 2025-06-09, got %s %s", cashflow.Rows[0].DayLabel, cashflow.Rows[0].DayKey)
	}
	if !cashflow.Rows[0].Expense.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("expected Monday expense 12000, got %s", cashflow.Rows[0].Expense)
	}
	if !cashflow.Rows[2].Income.Equal(decimal.NewFromInt(100000)) || !cashflow.Rows[2].Expense.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("unexpected Wednesday totals: income %s expense %s", cashflow.Rows[2].Income, cashflow.Rows[2].Expense)
	}

	todayCount := 0
	for _, row := range cashflow.Rows {
		if row.IsToday {
			todayCount++
			if row.DayKey != "2025-06-11" {
				t.Errorf("expected today 2025-06-11, got %s", row.DayKey)
			}
		}
		if !row.IsToday && row.Income.IsZero() && row.Expense.IsZero() && row.DayLabel == "" {
			t.Error("expected every row labeled")
		}
	}
	if todayCount != 1 {
		t.Errorf("expected exactly one today row, got %d", todayCount)
	}
}
