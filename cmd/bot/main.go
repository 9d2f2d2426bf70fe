package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/cache"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/config"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/logger"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/quizapi"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/repository"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Bot.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "はじめる",
		},
		{
			Command:     "quiz",
			Description: "クイズを始める (例: /quiz easy)",
		},
		{
			Command:     "history",
			Description: "最近の結果",
		},
		{
			Command:     "help",
			Description: "ヘルプ",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fetches block the update loop for at most the configured timeout.
	httpClient := &http.Client{Timeout: cfg.QuizAPI.Timeout}
	var fetcher session.Fetcher = quizapi.NewClient(cfg.QuizAPI.BaseURL, httpClient)

	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			lg.Warn("redis unavailable, quiz sets are fetched on every start", zap.Error(err))
		}
		fetcher = cache.NewQuizCache(fetcher, rdb, cfg.Redis.CacheTTL, lg.Named("cache"))
	}

	var results telegram.ResultStore
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        cfg.DB.MaxConnections,
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		results = repository.NewResultRepository(pool)
	} else {
		lg.Info("DATABASE_URL is not set, quiz results are not stored")
	}

	handler := telegram.NewHandler(bot, lg, fetcher, results, telegram.Options{
		UpdateTimeout: cfg.Bot.UpdateTimeout,
		HistoryLimit:  cfg.Bot.HistoryLimit,
		ResultBaseURL: cfg.QuizAPI.ResultBaseURL,
	})

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("handler stopped", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
