package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

type countingFetcher struct {
	quizzes []entities.Quiz
	err     error
	calls   int
}

func (f *countingFetcher) FetchQuizzes(context.Context, entities.Difficulty) ([]entities.Quiz, error) {
	f.calls++
	return f.quizzes, f.err
}

func newTestCache(t *testing.T, next *countingFetcher) (*QuizCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQuizCache(next, client, time.Minute, zap.NewNop()), mr
}

var sample = []entities.Quiz{{
	Genre:       "A",
	Question:    "Q1",
	Options:     []string{"x", "y"},
	Answer:      "y",
	Explanation: "E1",
}}

func TestQuizCacheReadThrough(t *testing.T) {
	next := &countingFetcher{quizzes: sample}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	first, err := c.FetchQuizzes(ctx, entities.DifficultyEasy)
	require.NoError(t, err)
	second, err := c.FetchQuizzes(ctx, entities.DifficultyEasy)
	require.NoError(t, err)

	assert.Equal(t, sample, first)
	assert.Equal(t, sample, second)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists("kenpo:quizzes:easy"))
	assert.Equal(t, time.Minute, mr.TTL("kenpo:quizzes:easy"))
}

func TestQuizCacheKeysByDifficulty(t *testing.T) {
	next := &countingFetcher{quizzes: sample}
	c, _ := newTestCache(t, next)
	ctx := context.Background()

	_, _ = c.FetchQuizzes(ctx, entities.DifficultyEasy)
	_, _ = c.FetchQuizzes(ctx, entities.DifficultyHard)

	assert.Equal(t, 2, next.calls)
}

func TestQuizCacheDoesNotCacheErrors(t *testing.T) {
	next := &countingFetcher{err: errors.New("boom")}
	c, mr := newTestCache(t, next)

	_, err := c.FetchQuizzes(context.Background(), entities.DifficultyNormal)

	require.Error(t, err)
	assert.False(t, mr.Exists("kenpo:quizzes:normal"))
}

func TestQuizCacheExpiry(t *testing.T) {
	next := &countingFetcher{quizzes: sample}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	_, _ = c.FetchQuizzes(ctx, entities.DifficultyEasy)
	mr.FastForward(2 * time.Minute)
	_, _ = c.FetchQuizzes(ctx, entities.DifficultyEasy)

	assert.Equal(t, 2, next.calls)
}

func TestQuizCacheCorruptEntry(t *testing.T) {
	next := &countingFetcher{quizzes: sample}
	c, mr := newTestCache(t, next)
	require.NoError(t, mr.Set("kenpo:quizzes:easy", "{broken"))

	got, err := c.FetchQuizzes(context.Background(), entities.DifficultyEasy)

	require.NoError(t, err)
	assert.Equal(t, sample, got)
	assert.Equal(t, 1, next.calls)
}

func TestQuizCacheRedisDown(t *testing.T) {
	next := &countingFetcher{quizzes: sample}
	c, mr := newTestCache(t, next)
	mr.Close()

	got, err := c.FetchQuizzes(context.Background(), entities.DifficultyEasy)

	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestQuizCacheInvalidate(t *testing.T) {
	next := &countingFetcher{quizzes: sample}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	_, _ = c.FetchQuizzes(ctx, entities.DifficultyEasy)
	require.NoError(t, c.Invalidate(ctx, entities.DifficultyEasy))

	assert.False(t, mr.Exists("kenpo:quizzes:easy"))
}

func TestQuizCacheDoesNotCacheEmptySet(t *testing.T) {
	next := &countingFetcher{quizzes: []entities.Quiz{}}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	quizzes, err := c.FetchQuizzes(ctx, entities.DifficultyHard)
	require.NoError(t, err)
	assert.Empty(t, quizzes)
	assert.False(t, mr.Exists("kenpo:quizzes:hard"))

	next.quizzes = sample
	quizzes, err = c.FetchQuizzes(ctx, entities.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, sample, quizzes)
	assert.Equal(t, 2, next.calls)
	assert.True(t, mr.Exists("kenpo:quizzes:hard"))
}
