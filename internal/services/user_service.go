package services

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/recipebox/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	user, err := s.users.GetOrCreate(ctx, telegramID, username, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
