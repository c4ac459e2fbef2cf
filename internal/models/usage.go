package models

// ChatUsage counts a user's AI text parses for one civil day. DayKey is
// the "YYYY-MM-DD" date in the configured fixed-offset calendar, so the
// counter resets at local midnight, not UTC midnight.
type ChatUsage struct {
	Base
	UserID string `gorm:"not null;uniqueIndex:idx_chat_usages_user_day" json:"user_id"`
	DayKey string `gorm:"not null;uniqueIndex:idx_chat_usages_user_day" json:"day_key"`
	Count  int    `gorm:"not null;default:0" json:"count"`
}

// ReceiptUsage counts a user's receipt-photo parses for one civil day.
type ReceiptUsage struct {
	Base
	UserID string `gorm:"not null;uniqueIndex:idx_receipt_usages_user_day" json:"user_id"`
	DayKey string `gorm:"not null;uniqueIndex:idx_receipt_usages_user_day" json:"day_key"`
	Count  int    `gorm:"not null;default:0" json:"count"`
}
