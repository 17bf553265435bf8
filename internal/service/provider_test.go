package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

func TestSettingsProvider_Snapshot(t *testing.T) {
	settings := &entities.UserSettings{UserID: 1, SoundEnabled: true, HapticsEnabled: false, HighScore: 40}
	p := NewSettingsProvider(settings, new(mockSettingsRepository), zap.NewNop())

	assert.Equal(t, 40, p.HighScore())
	assert.True(t, p.SoundEnabled())
	assert.False(t, p.HapticsEnabled())
}

func TestSettingsProvider_SetHighScoreWritesBack(t *testing.T) {
	repo := new(mockSettingsRepository)
	repo.On("SetHighScore", mock.Anything, int64(1), 250).Return(true, nil).Once()

	p := NewSettingsProvider(entities.NewUserSettings(1), repo, zap.NewNop())
	p.SetHighScore(250)

	assert.Equal(t, 250, p.HighScore())
	p.Wait()
	repo.AssertExpectations(t)
}

func TestSettingsProvider_WriteFailureKeepsSnapshot(t *testing.T) {
	repo := new(mockSettingsRepository)
	repo.On("SetHighScore", mock.Anything, int64(1), 90).Return(false, errors.New("timeout")).Once()

	p := NewSettingsProvider(entities.NewUserSettings(1), repo, zap.NewNop())
	p.SetHighScore(90)
	p.Wait()

	assert.Equal(t, 90, p.HighScore())
	repo.AssertExpectations(t)
}

func TestSettingsProvider_Update(t *testing.T) {
	p := NewSettingsProvider(&entities.UserSettings{UserID: 1, HighScore: 100}, new(mockSettingsRepository), zap.NewNop())

	// A stale stored value does not lower a score reached in play.
	p.highScore = 300
	p.Update(&entities.UserSettings{UserID: 1, SoundEnabled: true, HapticsEnabled: true, HighScore: 100})
	assert.Equal(t, 300, p.HighScore())
	assert.True(t, p.SoundEnabled())

	// A stored zero is a write that has not landed yet, not a reset.
	p.Update(&entities.UserSettings{UserID: 1, HighScore: 0})
	assert.Equal(t, 300, p.HighScore())
	assert.False(t, p.SoundEnabled())

	p.Update(&entities.UserSettings{UserID: 1, HighScore: 500})
	assert.Equal(t, 500, p.HighScore())
}

func TestSettingsProvider_ClearHighScore(t *testing.T) {
	p := NewSettingsProvider(&entities.UserSettings{UserID: 1, HighScore: 100}, new(mockSettingsRepository), zap.NewNop())

	p.ClearHighScore()
	p.Update(&entities.UserSettings{UserID: 1, SoundEnabled: true})

	assert.Zero(t, p.HighScore())
	assert.True(t, p.SoundEnabled())
}
