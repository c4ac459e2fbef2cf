package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, categoryService CategoryServicer) UserServicer {
	return &userService{db: db, categoryService: categoryService}
}

// FindOrCreateByTelegram resolves a Telegram sender to a user record.
// First contact creates the user together with the default account and
// the system category set, all in one transaction. On later contacts the
// stored profile fields are refreshed if Telegram reports new values.
func (s *userService) FindOrCreateByTelegram(telegramID int64, firstName, lastName, username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("telegram_id = ?", telegramID).First(&user).Error
	if err == nil {
		updates := map[string]interface{}{}
		if firstName != "" && firstName != user.FirstName {
			updates["first_name"] = firstName
		}
		if lastName != user.LastName {
			updates["last_name"] = lastName
		}
		if username != user.TelegramUsername {
			updates["telegram_username"] = username
		}
		if len(updates) > 0 {
			if err := s.db.Model(&user).Updates(updates).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user = models.User{
		TelegramID:       &telegramID,
		FirstName:        firstName,
		LastName:         lastName,
		TelegramUsername: username,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, spec := range models.DefaultAccounts {
			account := models.Account{
				UserID:    user.ID,
				Name:      spec.Name,
				Type:      spec.Type,
				Icon:      spec.Icon,
				Balance:   decimal.Zero,
				IsDefault: spec.IsDefault,
				IsActive:  true,
			}
			if err := tx.Create(&account).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return s.categoryService.EnsureDefaults(tx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTelegramID retrieves a user by Telegram ID.
func (s *userService) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	if err := s.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (s *userService) GetByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
