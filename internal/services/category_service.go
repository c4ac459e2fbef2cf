package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// EnsureDefaults seeds the system category set for the user. Existing
// categories are matched by (type, lowercased name) and never duplicated,
// so the call is safe to repeat on every user lookup.
func (s *categoryService) EnsureDefaults(tx *gorm.DB, userID string) error {
	if tx == nil {
		tx = s.db
	}

	var existing []models.Category
	if err := tx.Select("type", "name").Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	present := make(map[string]struct{}, len(existing))
	for _, cat := range existing {
		present[string(cat.Type)+":"+strings.ToLower(cat.Name)] = struct{}{}
	}

	var missing []models.Category
	for _, spec := range models.DefaultCategories {
		if _, ok := present[string(spec.Type)+":"+strings.ToLower(spec.Name)]; ok {
			continue
		}
		missing = append(missing, models.Category{
			UserID:   userID,
			Type:     spec.Type,
			Name:     spec.Name,
			NameID:   spec.NameID,
			Icon:     spec.Icon,
			IsSystem: true,
		})
	}
	if len(missing) == 0 {
		return nil
	}

	if err := tx.Create(&missing).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Resolve finds the category an AI guess or user input refers to.
//
// Precedence is explicit and ordered: case-insensitive match on the
// canonical name, then on the localized name, then the fixed fallback
// name for the type ("Shopping" / "Other Income"), then the user's
// oldest category of that type. Each step prefers the oldest match.
// Resolve never fails; with no categories at all it returns (nil, nil)
// and the transaction is saved uncategorized.
func (s *categoryService) Resolve(userID string, categoryType models.CategoryType, name string) (*models.Category, error) {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		for _, column := range []string{"name", "name_id"} {
			category, err := s.findOldest(userID, categoryType, column, trimmed)
			if err != nil {
				return nil, err
			}
			if category != nil {
				return category, nil
			}
		}
	}

	fallback := models.FallbackExpenseCategory
	if categoryType == models.CategoryTypeIncome {
		fallback = models.FallbackIncomeCategory
	}
	category, err := s.findOldest(userID, categoryType, "name", fallback)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}

	// Last resort: the oldest category of the type, whatever it is.
	var oldest models.Category
	err = s.db.Where("user_id = ? AND type = ?", userID, categoryType).
		Order("created_at ASC, id ASC").
		First(&oldest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &oldest, nil
}

func (s *categoryService) findOldest(userID string, categoryType models.CategoryType, column, value string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("user_id = ? AND type = ? AND LOWER("+column+") = LOWER(?)", userID, categoryType, value).
		Order("created_at ASC, id ASC").
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// ListByType retrieves the user's categories of one type, oldest first.
func (s *categoryService) ListByType(userID string, categoryType models.CategoryType) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ? AND type = ?", userID, categoryType).
		Order("created_at ASC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
