package models

// User represents a chat-platform user. Users are identified by their
// Telegram ID; there is no password or web credential in this system.
type User struct {
	Base
	TelegramID       *int64 `gorm:"uniqueIndex" json:"telegram_id,omitempty"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	TelegramUsername string `json:"telegram_username"`

	Accounts     []Account     `gorm:"foreignKey:UserID" json:"accounts,omitempty"`
	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
