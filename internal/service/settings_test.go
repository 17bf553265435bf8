package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

func TestSettingsService_GetOrCreate_Existing(t *testing.T) {
	repo := new(mockSettingsRepository)
	existing := &entities.UserSettings{UserID: 1, SoundEnabled: false, HighScore: 120}
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(existing, nil).Once()

	got, err := NewSettingsService(repo).GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, existing, got)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSettingsService_GetOrCreate_CreatesDefaults(t *testing.T) {
	repo := new(mockSettingsRepository)
	created := entities.NewUserSettings(1)
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(nil, entities.ErrSettingsNotFound).Once()
	repo.On("Create", mock.Anything, int64(1)).Return(nil).Once()
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(created, nil).Once()

	got, err := NewSettingsService(repo).GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, created, got)
	repo.AssertExpectations(t)
}

func TestSettingsService_GetOrCreate_PropagatesErrors(t *testing.T) {
	repo := new(mockSettingsRepository)
	boom := errors.New("connection refused")
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(nil, boom).Once()

	_, err := NewSettingsService(repo).GetOrCreate(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}

func TestSettingsService_ToggleSound(t *testing.T) {
	repo := new(mockSettingsRepository)
	before := entities.NewUserSettings(1)
	after := &entities.UserSettings{UserID: 1, SoundEnabled: false, HapticsEnabled: true}
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(before, nil).Once()
	repo.On("ToggleSound", mock.Anything, int64(1)).Return(false, nil).Once()
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(after, nil).Once()

	got, err := NewSettingsService(repo).ToggleSound(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, got.SoundEnabled)
	repo.AssertExpectations(t)
}

func TestSettingsService_ClearHighScore(t *testing.T) {
	repo := new(mockSettingsRepository)
	repo.On("GetByUserID", mock.Anything, int64(1)).Return(&entities.UserSettings{UserID: 1, HighScore: 300}, nil).Once()
	repo.On("ResetHighScore", mock.Anything, int64(1)).Return(nil).Once()

	require.NoError(t, NewSettingsService(repo).ClearHighScore(context.Background(), 1))
	repo.AssertExpectations(t)
}
