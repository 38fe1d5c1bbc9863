package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate gets an existing user or creates a new one
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)
	if result.Error == nil {
		return &user, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewDatabaseError(result.Error)
	}

	user = domain.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &user, nil
}

// GetByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}
