package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/service"
)

// handleStart registers the user and shows the main menu.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.userService.EnsureUser(ctx, userID, chatID); err != nil {
			return err
		}

		h.render(chatID, 0, msgWelcome, buildHomeKeyboard())
		return nil
	}
}

// handlePlay shows the rules with a button that starts the round.
func (h *Handler) handlePlay(messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text := formatInstructions(h.round.TimerDuration, h.round.InitialLives)
		h.render(chatID, messageID, text, buildInstructionsKeyboard())
		return nil
	}
}

func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		// The summary itself is sent by the presenter.
		_, err := h.gameService.Stop(ctx, chatID)
		if errors.Is(err, service.ErrNoSession) {
			h.send(newHTMLMessage(chatID, msgNoGame))
			return nil
		}
		return err
	}
}

func (h *Handler) handleSettings(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			h.logger.Warn("failed to load settings",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.sendError(chatID, msgSettingsUnavailable)
			return nil
		}

		h.render(chatID, messageID, formatSettings(settings), buildSettingsKeyboard())
		return nil
	}
}

func (h *Handler) handleBest(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		h.render(chatID, messageID, formatBest(settings), buildBackHomeKeyboard())
		return nil
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.send(newHTMLMessage(chatID, msgHelp))
		return nil
	}
}
