package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// HandlerFunc handles one update for a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs handler errors and tells the user something went
// wrong. Errors caused by shutdown are logged only.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			h.logger.Info("handler interrupted by shutdown",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		default:
			h.logger.Error("handler failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
