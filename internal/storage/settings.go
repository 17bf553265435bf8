package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

// SettingsStorage keeps user settings in memory. It is used when no
// database is configured, so settings last only for the process lifetime.
type SettingsStorage struct {
	mu       sync.RWMutex
	settings map[int64]entities.UserSettings
}

// NewSettingsStorage creates a new SettingsStorage.
func NewSettingsStorage() *SettingsStorage {
	return &SettingsStorage{
		settings: make(map[int64]entities.UserSettings),
	}
}

// Create stores default settings for a user unless some already exist.
func (s *SettingsStorage) Create(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings[userID]; !ok {
		s.settings[userID] = *entities.NewUserSettings(userID)
	}
	return nil
}

// GetByUserID returns a copy of the user's settings.
func (s *SettingsStorage) GetByUserID(_ context.Context, userID int64) (*entities.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, entities.ErrSettingsNotFound
	}
	return &settings, nil
}

func (s *SettingsStorage) ToggleSound(_ context.Context, userID int64) (bool, error) {
	return s.update(userID, func(st *entities.UserSettings) bool {
		st.SoundEnabled = !st.SoundEnabled
		return st.SoundEnabled
	})
}

func (s *SettingsStorage) ToggleHaptics(_ context.Context, userID int64) (bool, error) {
	return s.update(userID, func(st *entities.UserSettings) bool {
		st.HapticsEnabled = !st.HapticsEnabled
		return st.HapticsEnabled
	})
}

// SetHighScore stores score only if it beats the stored one.
func (s *SettingsStorage) SetHighScore(_ context.Context, userID int64, score int) (bool, error) {
	updated, err := s.update(userID, func(st *entities.UserSettings) bool {
		if score <= st.HighScore {
			return false
		}
		st.HighScore = score
		return true
	})
	if errors.Is(err, entities.ErrSettingsNotFound) {
		return false, nil
	}
	return updated, err
}

func (s *SettingsStorage) ResetHighScore(_ context.Context, userID int64) error {
	_, err := s.update(userID, func(st *entities.UserSettings) bool {
		st.HighScore = 0
		return true
	})
	return err
}

func (s *SettingsStorage) update(userID int64, fn func(st *entities.UserSettings) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[userID]
	if !ok {
		return false, entities.ErrSettingsNotFound
	}

	result := fn(&settings)
	settings.UpdatedAt = time.Now()
	s.settings[userID] = settings
	return result, nil
}
