package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

func TestSettingsStorage_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStorage()

	_, err := s.GetByUserID(ctx, 1)
	require.ErrorIs(t, err, entities.ErrSettingsNotFound)

	require.NoError(t, s.Create(ctx, 1))
	got, err := s.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.SoundEnabled)
	assert.True(t, got.HapticsEnabled)
	assert.Zero(t, got.HighScore)
}

func TestSettingsStorage_CreateKeepsExisting(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStorage()
	require.NoError(t, s.Create(ctx, 1))
	_, err := s.ToggleSound(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, 1))

	got, err := s.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.SoundEnabled)
}

func TestSettingsStorage_Toggles(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStorage()
	require.NoError(t, s.Create(ctx, 1))

	sound, err := s.ToggleSound(ctx, 1)
	require.NoError(t, err)
	assert.False(t, sound)

	haptics, err := s.ToggleHaptics(ctx, 1)
	require.NoError(t, err)
	assert.False(t, haptics)

	haptics, err = s.ToggleHaptics(ctx, 1)
	require.NoError(t, err)
	assert.True(t, haptics)

	_, err = s.ToggleSound(ctx, 2)
	require.ErrorIs(t, err, entities.ErrSettingsNotFound)
}

func TestSettingsStorage_HighScoreIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStorage()
	require.NoError(t, s.Create(ctx, 1))

	updated, err := s.SetHighScore(ctx, 1, 300)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = s.SetHighScore(ctx, 1, 200)
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := s.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 300, got.HighScore)

	require.NoError(t, s.ResetHighScore(ctx, 1))
	got, err = s.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, got.HighScore)
}

func TestSettingsStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStorage()
	require.NoError(t, s.Create(ctx, 1))

	got, err := s.GetByUserID(ctx, 1)
	require.NoError(t, err)
	got.HighScore = 999

	again, err := s.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, again.HighScore)
}
