package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/infra/postgres"
)

var ErrInvalidResult = errors.New("invalid quiz result")

// ResultRepository stores finished quiz results.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided database handle.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts a result and returns its ID.
func (r *ResultRepository) Save(ctx context.Context, result *entities.QuizResult) (int64, error) {
	if result.Total < 0 || result.Score < 0 || result.Score > result.Total {
		return 0, fmt.Errorf("save quiz result: %w", ErrInvalidResult)
	}

	query := `
		INSERT INTO quiz_results (
			chat_id, user_id, difficulty, score, total, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(
		ctx,
		query,
		result.ChatID,
		result.UserID,
		string(result.Difficulty),
		result.Score,
		result.Total,
		result.FinishedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save quiz result: %w", err)
	}

	result.ID = id
	return id, nil
}

// RecentByChat returns the latest results of a chat, newest first.
func (r *ResultRepository) RecentByChat(ctx context.Context, chatID int64, limit int) ([]*entities.QuizResult, error) {
	query := `
		SELECT id, chat_id, user_id, difficulty, score, total, finished_at
		FROM quiz_results
		WHERE chat_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent results: %w", err)
	}
	defer rows.Close()

	var results []*entities.QuizResult
	for rows.Next() {
		var (
			res        entities.QuizResult
			difficulty string
		)
		err = rows.Scan(
			&res.ID,
			&res.ChatID,
			&res.UserID,
			&difficulty,
			&res.Score,
			&res.Total,
			&res.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Difficulty = entities.Difficulty(difficulty)
		results = append(results, &res)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
