package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"catatuang/internal/ai"
	"catatuang/internal/models"
	"catatuang/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	FindOrCreateByTelegram(telegramID int64, firstName, lastName, username string) (*models.User, error)
	GetByTelegramID(telegramID int64) (*models.User, error)
	GetByID(userID string) (*models.User, error)
}

// BalanceSummary aggregates the balances of a user's active accounts.
type BalanceSummary struct {
	Accounts []models.Account `json:"accounts"`
	Total    decimal.Decimal  `json:"total"`
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	// GetOrCreatePrimary returns the user's default active account,
	// promoting the oldest active account or creating a zero-balance
	// "Main" cash account when none exists. Idempotent.
	GetOrCreatePrimary(userID string) (*models.Account, error)
	GetByID(userID, accountID string) (*models.Account, error)
	ListActive(userID string) ([]models.Account, error)
	TotalBalance(userID string) (*BalanceSummary, error)

	// ApplyDelta and ReverseDelta mutate account balances for a
	// transaction. Both must run inside the same gorm transaction as the
	// row insert/delete they accompany.
	ApplyDelta(tx *gorm.DB, txn *models.Transaction) error
	ReverseDelta(tx *gorm.DB, txn *models.Transaction) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	// EnsureDefaults seeds the system category set for the user without
	// ever duplicating existing entries.
	EnsureDefaults(tx *gorm.DB, userID string) error
	// Resolve matches a category name against canonical and localized
	// labels case-insensitively, with fixed fallbacks. Never fails: the
	// worst case is (nil, nil), leaving the transaction uncategorized.
	Resolve(userID string, categoryType models.CategoryType, name string) (*models.Category, error)
	ListByType(userID string, categoryType models.CategoryType) ([]models.Category, error)
}

// CreateTransactionParams holds the inputs for creating a ledger entry.
type CreateTransactionParams struct {
	UserID      string
	AccountID   string
	CategoryID  *string
	Type        models.TransactionType
	Amount      decimal.Decimal
	Description string
	RawInput    string
	ToAccountID *string
	Date        time.Time // zero value defaults to now
}

// TransactionResult pairs a created transaction with the fresh balance of
// the account it was applied to.
type TransactionResult struct {
	Transaction    *models.Transaction `json:"transaction"`
	UpdatedBalance decimal.Decimal     `json:"updated_balance"`
}

// TransactionServicer defines the contract for ledger mutations.
// Not-found and empty-ledger outcomes are (nil, nil), not errors.
type TransactionServicer interface {
	Create(params CreateTransactionParams) (*TransactionResult, error)
	ProcessCandidate(userID string, candidate *ai.Candidate, rawInput string) (*TransactionResult, error)
	DeleteMostRecent(userID string) (*models.Transaction, error)
	DeleteByID(userID, transactionID string) (*models.Transaction, error)
	FindLatestByRawInput(userID, rawInput string) (*models.Transaction, error)
	ListRecent(userID string, limit int) ([]models.Transaction, error)
	ListForMonth(userID string, year, month, limit int) ([]models.Transaction, error)
	// ListPage returns one page of the user's history plus the total row
	// count. year/month of 0 means no month filter.
	ListPage(userID string, year, month int, page pagination.PageRequest) ([]models.Transaction, int64, error)
}

// DateField selects which timestamp a summary filters on. The effective
// date and the creation time diverge whenever a transaction is backdated,
// so callers must pick one explicitly.
type DateField string

const (
	DateFieldEffective DateField = "effective"
	DateFieldCreated   DateField = "created"
)

// Column returns the transactions column the field maps to.
func (f DateField) Column() string {
	if f == DateFieldCreated {
		return "created_at"
	}
	return "date"
}

// Summary holds income/expense totals for a date range.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoryAmount is one row of a category breakdown, label plus total.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CashflowDay is one day row of a week cashflow chart. Rows exist for all
// seven days of the week even when no transactions fall on them.
type CashflowDay struct {
	DayKey     string          `json:"day_key"`
	DayLabel   string          `json:"day_label"`
	DayOfMonth int             `json:"day_of_month"`
	IsToday    bool            `json:"is_today"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
}

// WeekCashflow is a Monday-to-Sunday cashflow window.
type WeekCashflow struct {
	Rows  []CashflowDay `json:"rows"`
	Start time.Time     `json:"range_start"`
	End   time.Time     `json:"range_end"`
}

// SummaryServicer defines the contract for period aggregation. All
// operations are pure reads.
type SummaryServicer interface {
	Summary(userID string, start, end time.Time, field DateField) (*Summary, error)
	MonthSummary(userID string, year, month int, field DateField) (*Summary, error)
	CategoryBreakdown(userID string, year, month int) ([]CategoryAmount, error)
	WeekCashflow(userID string, reference time.Time) (*WeekCashflow, error)
}

// QuotaResult reports the outcome of a quota query or consumption.
type QuotaResult struct {
	OK        bool `json:"ok"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// QuotaServicer defines the contract for per-user daily usage counters.
// Get never consumes; Consume increments atomically and reports OK=false
// once the day's limit is reached.
type QuotaServicer interface {
	ChatQuota(userID string) (*QuotaResult, error)
	ConsumeChatQuota(userID string) (*QuotaResult, error)
	ReceiptQuota(userID string) (*QuotaResult, error)
	ConsumeReceiptQuota(userID string) (*QuotaResult, error)
}
