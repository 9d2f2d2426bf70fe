package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/session"
)

// handleQuizStart sends the quiz message and starts a new session on it,
// replacing any quiz already running in the chat.
func (h *Handler) handleQuizStart(userID int64, difficulty entities.Difficulty) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sent, err := h.bot.Send(newMessage(chatID, md(msgLoading)))
		if err != nil {
			return fmt.Errorf("send loading message: %w", err)
		}

		view := newQuizView()
		q := &activeQuiz{
			id:        h.newSessionID(),
			userID:    userID,
			messageID: sent.MessageID,
			view:      view,
		}
		logger := h.logger.With(
			zap.Int64("chat_id", chatID),
			zap.String("session_id", q.id),
		)
		q.session = session.New(difficulty, h.fetcher, view, view, logger)

		h.logger.Debug("starting quiz session",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.String("session_id", q.id),
			zap.String("difficulty", difficulty.String()),
		)

		h.quizzes.Store(chatID, q)
		q.session.Start(ctx)

		if q.session.State().Terminal() {
			h.quizzes.Delete(chatID)
		}

		return h.renderQuiz(chatID, q)
	}
}

// handleQuizCallback routes option and "next" presses to the chat's session.
// Presses from a keyboard rendered for another session or another quiz are
// rejected.
func (h *Handler) handleQuizCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(data.Params) < 3 {
			h.answerCallback(cb.ID, "")
			return nil
		}

		sessionID, sub := data.Params[0], data.Params[2]
		quizIndex, err := strconv.Atoi(data.Params[1])
		if err != nil {
			h.answerCallback(cb.ID, "")
			return nil
		}

		q, ok := h.quizzes.Get(chatID)
		if !ok || q.id != sessionID || q.session.CurrentIndex() != quizIndex {
			h.answerCallback(cb.ID, msgQuizExpired)
			return nil
		}

		switch sub {
		case quizAnswer:
			if len(data.Params) != 4 {
				h.answerCallback(cb.ID, msgInvalidOption)
				return nil
			}
			index, err := strconv.Atoi(data.Params[3])
			if err != nil || !q.view.Select(index) {
				h.answerCallback(cb.ID, msgInvalidOption)
				return nil
			}

		case quizNext:
			q.session.Advance()

		default:
			h.answerCallback(cb.ID, "")
			return nil
		}

		h.answerCallback(cb.ID, "")

		if q.session.State() == session.StateFinished {
			return h.finishQuiz(ctx, chatID, q)
		}

		if !q.view.dirty {
			return nil
		}

		return h.renderQuiz(chatID, q)
	}
}

// finishQuiz shows the results screen for the navigation target the session
// produced and records the result.
func (h *Handler) finishQuiz(ctx context.Context, chatID int64, q *activeQuiz) error {
	h.quizzes.Delete(chatID)

	target := q.view.destination
	score, total := parseResultTarget(target)
	result := entities.NewQuizResult(chatID, q.userID, q.session.Difficulty(), score, total)

	h.logger.Info("quiz finished",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", q.id),
		zap.String("target", target),
	)

	if h.results != nil {
		if _, err := h.results.Save(ctx, result); err != nil {
			h.logger.Error("failed to save quiz result",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}

	edit := newEdit(chatID, q.messageID, formatResult(result))
	kb := buildResultKeyboard(result.Difficulty, resultPageURL(h.opts.ResultBaseURL, target))
	edit.ReplyMarkup = &kb

	return h.send(edit)
}

// renderQuiz edits the quiz message to match the view.
func (h *Handler) renderQuiz(chatID int64, q *activeQuiz) error {
	text, kb := q.view.render(q.id, q.session.CurrentIndex())

	edit := newEdit(chatID, q.messageID, text)
	edit.ReplyMarkup = kb

	return h.send(edit)
}
