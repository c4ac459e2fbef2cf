package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Category classifies a transaction. Every category carries two labels:
// the canonical English Name and the Indonesian display NameID; lookups
// match either, case-insensitively. Uniqueness per (user, type, name).
type Category struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_type_name" json:"user_id"`
	Type     CategoryType `gorm:"not null;uniqueIndex:idx_categories_user_type_name" json:"type"`
	Name     string       `gorm:"not null;uniqueIndex:idx_categories_user_type_name" json:"name"`
	NameID   string       `gorm:"not null" json:"name_id"`
	Icon     string       `json:"icon"`
	IsSystem bool         `gorm:"not null;default:false" json:"is_system"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// DisplayLabel returns the localized name, falling back to the canonical one.
func (c *Category) DisplayLabel() string {
	if c.NameID != "" {
		return c.NameID
	}
	return c.Name
}
