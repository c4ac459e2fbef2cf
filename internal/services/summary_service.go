package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/period"
)

// summaryService handles period aggregation over the ledger.
type summaryService struct {
	db    *gorm.DB
	clock *period.Clock
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, clock *period.Clock) SummaryServicer {
	return &summaryService{db: db, clock: clock}
}

// Summary totals income and expense over [start, end) using the chosen
// date field. Transfers move money between accounts without changing net
// worth, so they are excluded from both totals but still counted.
//
// Sums are computed in Go over exact decimals rather than in SQL, where
// aggregate functions would round through floating point.
func (s *summaryService) Summary(userID string, start, end time.Time, field DateField) (*Summary, error) {
	column := field.Column()
	// Bounds are bound in UTC to match stored timestamps; sqlite compares
	// them as strings, so mixed offsets would break the range scan.
	start, end = start.UTC(), end.UTC()

	var transactions []models.Transaction
	if err := s.db.Select("type", "amount").
		Where("user_id = ? AND "+column+" >= ? AND "+column+" < ?", userID, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for i := range transactions {
		switch transactions[i].Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(transactions[i].Amount)
		case models.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(transactions[i].Amount)
		}
	}
	summary.TransactionCount = len(transactions)
	return &summary, nil
}

// MonthSummary totals one civil month.
func (s *summaryService) MonthSummary(userID string, year, month int, field DateField) (*Summary, error) {
	start, end := s.clock.MonthRange(year, month)
	return s.Summary(userID, start, end, field)
}

// CategoryBreakdown totals the month's expenses per category, largest
// first. Uncategorized spending is grouped under "Lainnya". Ties sort by
// label so the order is stable.
func (s *summaryService) CategoryBreakdown(userID string, year, month int) ([]CategoryAmount, error) {
	start, end := s.clock.MonthRange(year, month)
	start, end = start.UTC(), end.UTC()

	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, models.TransactionTypeExpense, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]decimal.Decimal)
	for i := range transactions {
		label := "Lainnya"
		if transactions[i].Category != nil {
			label = transactions[i].Category.DisplayLabel()
		}
		totals[label] = totals[label].Add(transactions[i].Amount)
	}

	breakdown := make([]CategoryAmount, 0, len(totals))
	for label, amount := range totals {
		breakdown = append(breakdown, CategoryAmount{Category: label, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Amount.Equal(breakdown[j].Amount) {
			return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown, nil
}

// WeekCashflow returns a Monday-to-Sunday daily income/expense series for
// the week containing the reference instant. All seven rows are present
// with zero totals for empty days, and exactly the row whose civil day
// matches today is flagged.
func (s *summaryService) WeekCashflow(userID string, reference time.Time) (*WeekCashflow, error) {
	start, end := s.clock.WeekRange(reference)
	todayKey := s.clock.TodayKey()

	rows := make([]CashflowDay, 7)
	index := make(map[string]*CashflowDay, 7)
	for i := range rows {
		day := start.AddDate(0, 0, i)
		key := s.clock.DayKey(day)
		rows[i] = CashflowDay{
			DayKey:     key,
			DayLabel:   s.clock.DayLabel(day),
			DayOfMonth: s.clock.DayOfMonth(day),
			IsToday:    key == todayKey,
			Income:     decimal.Zero,
			Expense:    decimal.Zero,
		}
		index[key] = &rows[i]
	}

	var transactions []models.Transaction
	if err := s.db.Select("type", "amount", "date").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start.UTC(), end.UTC()).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range transactions {
		row, ok := index[s.clock.DayKey(transactions[i].Date)]
		if !ok {
			continue
		}
		switch transactions[i].Type {
		case models.TransactionTypeIncome:
			row.Income = row.Income.Add(transactions[i].Amount)
		case models.TransactionTypeExpense:
			row.Expense = row.Expense.Add(transactions[i].Amount)
		}
	}

	return &WeekCashflow{Rows: rows, Start: start, End: end}, nil
}
