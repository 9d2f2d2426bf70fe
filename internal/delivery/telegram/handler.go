package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/session"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler talks to.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// ResultStore persists finished quiz results.
type ResultStore interface {
	Save(ctx context.Context, result *entities.QuizResult) (int64, error)
	RecentByChat(ctx context.Context, chatID int64, limit int) ([]*entities.QuizResult, error)
}

// Options tunes the handler.
type Options struct {
	UpdateTimeout int    // long polling timeout in seconds
	HistoryLimit  int    // results listed by /history
	ResultBaseURL string // root of the result page, empty hides the link
}

// activeQuiz is a running quiz session bound to the chat message it renders into.
type activeQuiz struct {
	id        string
	userID    int64
	messageID int
	session   *session.Session
	view      *quizView
}

type Handler struct {
	bot     BotAPI
	logger  *zap.Logger
	fetcher session.Fetcher
	results ResultStore
	quizzes *storage.SessionStorage[*activeQuiz]
	opts    Options

	newSessionID func() string
}

// NewHandler creates a handler. results may be nil when result storage is disabled.
func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	fetcher session.Fetcher,
	results ResultStore,
	opts Options,
) *Handler {
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = 60
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 5
	}

	return &Handler{
		bot:          bot,
		logger:       logger,
		fetcher:      fetcher,
		results:      results,
		quizzes:      storage.NewSessionStorage[*activeQuiz](),
		opts:         opts,
		newSessionID: uuid.NewString,
	}
}

// Run consumes updates until the context is cancelled. Updates are handled
// one at a time.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.opts.UpdateTimeout

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.sendText(msgUseCommands))(ctx, chatID)
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

	case "quiz":
		arg := strings.TrimSpace(update.Message.CommandArguments())
		if arg == "" {
			_ = h.withErrorHandling(h.handleMenu())(ctx, chatID)
			return
		}
		_ = h.withErrorHandling(h.handleQuizStart(userID, entities.Difficulty(arg)))(ctx, chatID)

	case "history":
		_ = h.withErrorHandling(h.handleHistory())(ctx, chatID)

	case "help":
		_ = h.withErrorHandling(h.sendText(msgHelp))(ctx, chatID)

	default:
		_ = h.withErrorHandling(h.sendText(msgUnknownCommand))(ctx, chatID)
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newMessage(chatID, md(text)))
}

// send delivers c and logs failures. The error is returned for callers that
// need to stop on it.
func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the client's loading indicator, optionally with a toast.
func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
