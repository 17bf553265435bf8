package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
)

// Sender is the part of the Bot API used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot is satisfied by *tgbotapi.BotAPI.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	ToggleSound(ctx context.Context, userID int64) (*entities.UserSettings, error)
	ToggleHaptics(ctx context.Context, userID int64) (*entities.UserSettings, error)
	ClearHighScore(ctx context.Context, userID int64) error
}

type GameService interface {
	Start(ctx context.Context, chatID, userID int64) error
	Answer(ctx context.Context, chatID int64, round, number, optionIndex int) (game.AnswerResult, error)
	Stop(ctx context.Context, chatID int64) (game.RoundSummary, error)
	RefreshSettings(ctx context.Context, chatID, userID int64) error
	ClearHighScore(ctx context.Context, chatID, userID int64) error
}
