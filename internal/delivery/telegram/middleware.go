package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs failures and panics and tells the user something
// went wrong. Malformed callbacks are dropped silently.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) (err error) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("handler panicked",
					zap.Int64("chat_id", chatID),
					zap.Any("panic", r),
				)
				h.sendError(chatID, msgInternalError)
				err = nil
			}
		}()

		if err := fn(ctx, chatID); err != nil {
			if errors.Is(err, errMalformedCallback) {
				h.logger.Debug("malformed callback", zap.Int64("chat_id", chatID))
				return nil
			}
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}
