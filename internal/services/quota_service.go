package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/period"
)

// quotaService handles per-user daily usage counters.
type quotaService struct {
	db           *gorm.DB
	clock        *period.Clock
	chatLimit    int
	receiptLimit int
}

// NewQuotaService creates a new QuotaServicer with the given daily limits.
func NewQuotaService(db *gorm.DB, clock *period.Clock, chatLimit, receiptLimit int) QuotaServicer {
	return &quotaService{
		db:           db,
		clock:        clock,
		chatLimit:    chatLimit,
		receiptLimit: receiptLimit,
	}
}

// ChatQuota reports today's chat-parse usage without consuming any.
func (s *quotaService) ChatQuota(userID string) (*QuotaResult, error) {
	count, err := s.usedToday(&models.ChatUsage{}, userID)
	if err != nil {
		return nil, err
	}
	return result(count, s.chatLimit, count < s.chatLimit), nil
}

// ConsumeChatQuota atomically takes one unit of today's chat quota.
// OK=false means the limit was already reached and nothing was consumed.
func (s *quotaService) ConsumeChatQuota(userID string) (*QuotaResult, error) {
	return s.consume(&models.ChatUsage{}, userID, s.chatLimit, func(dayKey string) interface{} {
		return &models.ChatUsage{UserID: userID, DayKey: dayKey, Count: 1}
	})
}

// ReceiptQuota reports today's receipt-parse usage without consuming any.
func (s *quotaService) ReceiptQuota(userID string) (*QuotaResult, error) {
	count, err := s.usedToday(&models.ReceiptUsage{}, userID)
	if err != nil {
		return nil, err
	}
	return result(count, s.receiptLimit, count < s.receiptLimit), nil
}

// ConsumeReceiptQuota atomically takes one unit of today's receipt quota.
func (s *quotaService) ConsumeReceiptQuota(userID string) (*QuotaResult, error) {
	return s.consume(&models.ReceiptUsage{}, userID, s.receiptLimit, func(dayKey string) interface{} {
		return &models.ReceiptUsage{UserID: userID, DayKey: dayKey, Count: 1}
	})
}

func (s *quotaService) usedToday(model interface{}, userID string) (int, error) {
	var row struct{ Count int }
	err := s.db.Model(model).
		Select("count").
		Where("user_id = ? AND day_key = ?", userID, s.clock.TodayKey()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Count, nil
}

// consume increments the day counter with a guarded SQL-side update so
// two concurrent consumers can never push the count past the limit. The
// count predicate makes the increment and the limit check one statement.
func (s *quotaService) consume(model interface{}, userID string, limit int, newRow func(dayKey string) interface{}) (*QuotaResult, error) {
	dayKey := s.clock.TodayKey()

	var out *QuotaResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row struct{ Count int }
		err := tx.Model(model).
			Select("count").
			Where("user_id = ? AND day_key = ?", userID, dayKey).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(newRow(dayKey)).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			out = result(1, limit, true)
			return nil
		}
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		count := row.Count
		if count >= limit {
			out = result(count, limit, false)
			return nil
		}

		res := tx.Model(model).
			Where("user_id = ? AND day_key = ? AND count < ?", userID, dayKey, limit).
			Update("count", gorm.Expr("count + 1"))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent consumer took the last unit first.
			out = result(limit, limit, false)
			return nil
		}
		out = result(count+1, limit, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func result(used, limit int, ok bool) *QuotaResult {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return &QuotaResult{OK: ok, Used: used, Remaining: remaining, Limit: limit}
}
