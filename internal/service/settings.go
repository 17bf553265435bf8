package service

import (
	"context"
	"errors"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrSettingsNotFound) {
			// Create default settings.
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			// Retrieve newly created settings.
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

// ToggleSound flips the sound setting, creating defaults first if needed.
func (s *SettingsService) ToggleSound(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	return s.toggle(ctx, userID, s.repository.ToggleSound)
}

// ToggleHaptics flips the haptics setting, creating defaults first if needed.
func (s *SettingsService) ToggleHaptics(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	return s.toggle(ctx, userID, s.repository.ToggleHaptics)
}

func (s *SettingsService) toggle(
	ctx context.Context,
	userID int64,
	flip func(ctx context.Context, userID int64) (bool, error),
) (*entities.UserSettings, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := flip(ctx, userID); err != nil {
		return nil, err
	}
	return s.repository.GetByUserID(ctx, userID)
}

// SetHighScore keeps the greater of the stored and the given score.
func (s *SettingsService) SetHighScore(ctx context.Context, userID int64, score int) (bool, error) {
	return s.repository.SetHighScore(ctx, userID, score)
}

func (s *SettingsService) ClearHighScore(ctx context.Context, userID int64) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.ResetHighScore(ctx, userID)
}
