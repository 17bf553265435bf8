package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/infra/postgres"
)

var ErrSettingsNotFound = entities.ErrSettingsNotFound

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database handle.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a user. Existing settings are kept.
func (r *SettingsRepository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_settings (
			user_id, sound_enabled, haptics_enabled, high_score, created_at, updated_at
		) VALUES ($1, TRUE, TRUE, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, sound_enabled, haptics_enabled, high_score, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.SoundEnabled,
		&settings.HapticsEnabled,
		&settings.HighScore,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// ToggleSound flips the sound flag and returns the new value.
func (r *SettingsRepository) ToggleSound(ctx context.Context, userID int64) (bool, error) {
	query := `
		UPDATE user_settings
		SET sound_enabled = NOT sound_enabled, updated_at = NOW()
		WHERE user_id = $1
		RETURNING sound_enabled
	`

	enabled, err := r.toggle(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("toggle sound: %w", err)
	}
	return enabled, nil
}

// ToggleHaptics flips the haptics flag and returns the new value.
func (r *SettingsRepository) ToggleHaptics(ctx context.Context, userID int64) (bool, error) {
	query := `
		UPDATE user_settings
		SET haptics_enabled = NOT haptics_enabled, updated_at = NOW()
		WHERE user_id = $1
		RETURNING haptics_enabled
	`

	enabled, err := r.toggle(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("toggle haptics: %w", err)
	}
	return enabled, nil
}

func (r *SettingsRepository) toggle(ctx context.Context, query string, userID int64) (bool, error) {
	var enabled bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrSettingsNotFound
		}
		return false, err
	}
	return enabled, nil
}

// SetHighScore stores score only if it beats the stored one.
// It reports whether the row was updated.
func (r *SettingsRepository) SetHighScore(ctx context.Context, userID int64, score int) (bool, error) {
	query := `
		UPDATE user_settings
		SET high_score = $1, updated_at = NOW()
		WHERE user_id = $2 AND high_score < $1
	`

	result, err := r.db.Exec(ctx, query, score, userID)
	if err != nil {
		return false, fmt.Errorf("set high score: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ResetHighScore sets the high score back to zero.
func (r *SettingsRepository) ResetHighScore(ctx context.Context, userID int64) error {
	query := `
		UPDATE user_settings
		SET high_score = 0, updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("reset high score: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
