package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) Create(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	args := m.Called(ctx, userID)
	settings, _ := args.Get(0).(*entities.UserSettings)
	return settings, args.Error(1)
}

func (m *mockSettingsRepository) ToggleSound(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSettingsRepository) ToggleHaptics(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSettingsRepository) SetHighScore(ctx context.Context, userID int64, score int) (bool, error) {
	args := m.Called(ctx, userID, score)
	return args.Bool(0), args.Error(1)
}

func (m *mockSettingsRepository) ResetHighScore(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}
