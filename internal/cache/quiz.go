// Package cache provides a Redis read-through cache for quiz sets.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/session"
)

const keyPrefix = "kenpo:quizzes:"

// QuizCache serves quiz sets from Redis and falls back to the wrapped fetcher
// on a miss. Only successful fetches are cached.
type QuizCache struct {
	next   session.Fetcher
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewQuizCache wraps next with a cache entry lifetime of ttl.
func NewQuizCache(next session.Fetcher, client *redis.Client, ttl time.Duration, logger *zap.Logger) *QuizCache {
	return &QuizCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchQuizzes implements session.Fetcher.
func (c *QuizCache) FetchQuizzes(ctx context.Context, difficulty entities.Difficulty) ([]entities.Quiz, error) {
	key := cacheKey(difficulty)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var quizzes []entities.Quiz
		if err := json.Unmarshal(data, &quizzes); err == nil {
			c.logger.Debug("quiz cache hit", zap.String("difficulty", difficulty.String()))
			return quizzes, nil
		}
		c.logger.Warn("dropping corrupt quiz cache entry", zap.String("key", key))
		_ = c.client.Del(ctx, key).Err()
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("quiz cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	quizzes, err := c.next.FetchQuizzes(ctx, difficulty)
	if err != nil {
		return nil, err
	}
	// Empty sets are not cached.
	if len(quizzes) == 0 {
		return quizzes, nil
	}

	data, err = json.Marshal(quizzes)
	if err != nil {
		return quizzes, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("quiz cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return quizzes, nil
}

// Invalidate removes the cached set for the difficulty.
func (c *QuizCache) Invalidate(ctx context.Context, difficulty entities.Difficulty) error {
	return c.client.Del(ctx, cacheKey(difficulty)).Err()
}

func cacheKey(difficulty entities.Difficulty) string {
	return keyPrefix + difficulty.String()
}
