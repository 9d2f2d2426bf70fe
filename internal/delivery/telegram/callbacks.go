package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionDifficulty:
		h.answerCallback(cb.ID, "")
		if len(data.Params) == 0 {
			h.logger.Warn("invalid difficulty callback", zap.String("data", cb.Data))
			return
		}
		// The difficulty is free text from /quiz and may itself contain ':'.
		difficulty := entities.Difficulty(strings.Join(data.Params, ":"))
		_ = h.withErrorHandling(h.handleQuizStart(cb.From.ID, difficulty))(ctx, chatID)

	case actionMenu:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleMenu())(ctx, chatID)

	case actionQuiz:
		_ = h.withErrorHandling(h.handleQuizCallback(cb, data))(ctx, chatID)

	default:
		h.answerCallback(cb.ID, "")
	}
}
