package entities

import "time"

// QuizResult is the outcome of a finished quiz session.
type QuizResult struct {
	ID         int64      // unique result ID
	ChatID     int64      // chat the session ran in
	UserID     int64      // user who finished the quiz
	Difficulty Difficulty // difficulty the quizzes were fetched for
	Score      int        // number of correct answers
	Total      int        // number of quizzes in the session
	FinishedAt time.Time  // timestamp when the results screen was reached
}

// NewQuizResult creates a result stamped with the current time.
func NewQuizResult(chatID, userID int64, difficulty Difficulty, score, total int) *QuizResult {
	return &QuizResult{
		ChatID:     chatID,
		UserID:     userID,
		Difficulty: difficulty,
		Score:      score,
		Total:      total,
		FinishedAt: time.Now(),
	}
}

// Percentage returns the share of correct answers in percent.
func (r *QuizResult) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}
