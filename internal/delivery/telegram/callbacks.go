package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/game"
	"github.com/aliskhannn/flags-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	userID := cb.From.ID
	cd := decodeCallback(cb.Data)

	// notice is shown to the user as a toast.
	notice := ""

	var fn HandlerFunc
	switch cd.Action {
	case actionMenu:
		fn = h.handleMenuCallback(cd, userID, messageID)
	case actionGame:
		fn = h.handleGameCallback(cd, userID)
	case actionAnswer:
		fn = h.handleAnswerCallback(cd, &notice)
	case actionSettings:
		fn = h.handleSettingsCallback(cd, userID, messageID, &notice)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)

	// Remove the user's "clock".
	h.answerCallback(cb.ID, notice)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleMenuCallback(cd callbackData, userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch cd.param(0) {
		case menuHome:
			h.render(chatID, messageID, msgWelcome, buildHomeKeyboard())
			return nil
		case menuPlay:
			return h.handlePlay(messageID)(ctx, chatID)
		case menuSettings:
			return h.handleSettings(userID, messageID)(ctx, chatID)
		case menuBest:
			return h.handleBest(userID, messageID)(ctx, chatID)
		default:
			return errMalformedCallback
		}
	}
}

func (h *Handler) handleGameCallback(cd callbackData, userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch cd.param(0) {
		case gameStart:
			return h.gameService.Start(ctx, chatID, userID)
		case gameStop:
			return h.handleStop()(ctx, chatID)
		default:
			return errMalformedCallback
		}
	}
}

// handleAnswerCallback submits the pressed option. Late and stale presses
// only produce a notice.
func (h *Handler) handleAnswerCallback(cd callbackData, notice *string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ref, err := parseAnswerCallback(cd)
		if err != nil {
			return err
		}

		_, err = h.gameService.Answer(ctx, chatID, ref.Round, ref.Number, ref.Option)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, service.ErrStaleAnswer),
			errors.Is(err, game.ErrAnswerWindowClosed),
			errors.Is(err, game.ErrNoRound):
			*notice = msgQuestionOver
			return nil
		case errors.Is(err, service.ErrNoSession):
			*notice = msgNoGame
			return nil
		default:
			return err
		}
	}
}

func (h *Handler) handleSettingsCallback(cd callbackData, userID int64, messageID int, notice *string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch cd.param(0) {
		case settingsSound:
			if _, err := h.settingsService.ToggleSound(ctx, userID); err != nil {
				return err
			}
		case settingsHaptics:
			if _, err := h.settingsService.ToggleHaptics(ctx, userID); err != nil {
				return err
			}
		case settingsClear:
			h.render(chatID, messageID, msgClearConfirm, buildClearConfirmKeyboard())
			return nil
		case settingsClearConfirm:
			if err := h.settingsService.ClearHighScore(ctx, userID); err != nil {
				return err
			}
			*notice = msgHighScoreCleared
		case settingsClearCancel:
		default:
			return errMalformedCallback
		}

		refresh := h.gameService.RefreshSettings
		if cd.param(0) == settingsClearConfirm {
			refresh = h.gameService.ClearHighScore
		}
		if err := refresh(ctx, chatID, userID); err != nil {
			h.logger.Warn("failed to refresh running game settings",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

		return h.handleSettings(userID, messageID)(ctx, chatID)
	}
}
