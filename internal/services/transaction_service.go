package services

import (
	"errors"

	"gorm.io/gorm"

	"catatuang/internal/ai"
	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/pagination"
	"catatuang/internal/period"
)

// transactionService handles ledger mutations.
type transactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
	clock           *period.Clock
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer, clock *period.Clock) TransactionServicer {
	return &transactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
		clock:           clock,
	}
}

// Create inserts a transaction row and applies its balance delta in one
// atomic unit, then returns the row together with the source account's
// fresh balance. No observable state ever holds one without the other.
func (s *transactionService) Create(params CreateTransactionParams) (*TransactionResult, error) {
	if !params.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if params.Type == models.TransactionTypeTransfer {
		if params.ToAccountID == nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer requires a destination account")
		}
		if *params.ToAccountID == params.AccountID {
			return nil, apperrors.ErrSameAccountTransfer
		}
	}

	// Ownership checks before any mutation. The destination of a transfer
	// is scoped to the same user; a foreign account ID must never be
	// credited.
	if _, err := s.accountService.GetByID(params.UserID, params.AccountID); err != nil {
		return nil, err
	}
	if params.Type == models.TransactionTypeTransfer {
		if _, err := s.accountService.GetByID(params.UserID, *params.ToAccountID); err != nil {
			return nil, err
		}
	}

	date := params.Date
	if date.IsZero() {
		date = s.clock.Now()
	}
	// Dates are stored in UTC so range scans compare consistently on
	// stores that order timestamps lexically.
	date = date.UTC()

	transaction := models.Transaction{
		UserID:      params.UserID,
		AccountID:   params.AccountID,
		CategoryID:  params.CategoryID,
		Type:        params.Type,
		Amount:      params.Amount,
		Description: params.Description,
		RawInput:    params.RawInput,
		Date:        date,
		ToAccountID: params.ToAccountID,
	}

	var result TransactionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.accountService.ApplyDelta(tx, &transaction); err != nil {
			return err
		}

		var account models.Account
		if err := tx.Where("id = ?", transaction.AccountID).First(&account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = TransactionResult{Transaction: &transaction, UpdatedBalance: account.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ProcessCandidate commits a confirmed AI candidate to the ledger: the
// user's primary account, the resolved category, and the original input
// kept as raw_input for later reply-to-delete reconciliation.
func (s *transactionService) ProcessCandidate(userID string, candidate *ai.Candidate, rawInput string) (*TransactionResult, error) {
	account, err := s.accountService.GetOrCreatePrimary(userID)
	if err != nil {
		return nil, err
	}

	transactionType := models.TransactionTypeExpense
	categoryType := models.CategoryTypeExpense
	if candidate.Type == ai.CandidateIncome {
		transactionType = models.TransactionTypeIncome
		categoryType = models.CategoryTypeIncome
	}

	category, err := s.categoryService.Resolve(userID, categoryType, candidate.Category)
	if err != nil {
		return nil, err
	}
	var categoryID *string
	if category != nil {
		categoryID = &category.ID
	}

	return s.Create(CreateTransactionParams{
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      candidate.Amount,
		Description: candidate.Description,
		RawInput:    rawInput,
	})
}

// DeleteMostRecent removes the user's newest transaction (by creation
// time, last inserted wins on ties) and reverses its balance effect in
// the same atomic unit. An empty ledger returns (nil, nil).
func (s *transactionService) DeleteMostRecent(userID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.deleteAndReverse(&transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteByID removes one transaction scoped by ownership, reversing its
// balance effect atomically. A missing or foreign transaction returns
// (nil, nil).
func (s *transactionService) DeleteByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.deleteAndReverse(&transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *transactionService) deleteAndReverse(transaction *models.Transaction) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Guard against a concurrent delete of the same row: only reverse
		// the delta if this writer actually removed it.
		result := tx.Where("id = ?", transaction.ID).Delete(&models.Transaction{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return s.accountService.ReverseDelta(tx, transaction)
	})
}

// FindLatestByRawInput returns the newest transaction whose recorded raw
// input matches the given text, or (nil, nil).
func (s *transactionService) FindLatestByRawInput(userID, rawInput string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("user_id = ? AND raw_input = ?", userID, rawInput).
		Order("created_at DESC, id DESC").
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListRecent retrieves the user's newest transactions with their account
// and category preloaded.
func (s *transactionService) ListRecent(userID string, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Preload("Account").
		Preload("Category").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListPage returns one page of the user's history, newest first, with
// the total row count for pagination metadata.
func (s *transactionService) ListPage(userID string, year, month int, page pagination.PageRequest) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if year != 0 && month != 0 {
		start, end := s.clock.MonthRange(year, month)
		query = query.Where("date >= ? AND date < ?", start.UTC(), end.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.
		Preload("Account").
		Preload("Category").
		Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, total, nil
}

// ListForMonth retrieves the newest transactions whose effective date
// falls in the given civil month. Month boundaries are half-open
// instants in the configured fixed-offset calendar.
func (s *transactionService) ListForMonth(userID string, year, month, limit int) ([]models.Transaction, error) {
	start, end := s.clock.MonthRange(year, month)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start.UTC(), end.UTC()).
		Preload("Account").
		Preload("Category").
		Order("date DESC, created_at DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
