package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	ToggleSound(ctx context.Context, userID int64) (bool, error)
	ToggleHaptics(ctx context.Context, userID int64) (bool, error)
	SetHighScore(ctx context.Context, userID int64, score int) (bool, error)
	ResetHighScore(ctx context.Context, userID int64) error
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// HighScoreWriter persists a new best score for a user.
type HighScoreWriter interface {
	SetHighScore(ctx context.Context, userID int64, score int) (bool, error)
}

// SettingsSource loads the settings a game session starts with.
type SettingsSource interface {
	HighScoreWriter
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
}

// Presenter renders one chat's round. Close flushes queued output and
// releases the presenter.
type Presenter interface {
	game.PresentationSink
	game.Effects
	BeginRound(round int)
	Close()
}

// PresenterFactory builds the presenter for a chat.
type PresenterFactory func(chatID int64) Presenter
