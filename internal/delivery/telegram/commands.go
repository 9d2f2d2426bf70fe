package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// sendText sends a static plain text message.
func (h *Handler) sendText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, md(text)))
	}
}

// handleStart greets the user and shows the difficulty selection.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, md(msgWelcome))
		msg.ReplyMarkup = buildDifficultyKeyboard()
		return h.send(msg)
	}
}

// handleMenu shows the difficulty selection.
func (h *Handler) handleMenu() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, md(msgChooseDifficulty))
		msg.ReplyMarkup = buildDifficultyKeyboard()
		return h.send(msg)
	}
}

// handleHistory lists the latest finished quizzes of the chat.
func (h *Handler) handleHistory() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.results == nil {
			return h.send(newMessage(chatID, md(msgHistoryDisabled)))
		}

		h.logger.Debug("rendering history", zap.Int64("chat_id", chatID))

		results, err := h.results.RecentByChat(ctx, chatID, h.opts.HistoryLimit)
		if err != nil {
			return fmt.Errorf("recent results: %w", err)
		}

		return h.send(newMessage(chatID, formatHistory(results)))
	}
}
