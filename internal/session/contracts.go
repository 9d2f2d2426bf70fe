package session

import (
	"context"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

// FeedbackClass selects the styling of the feedback region.
type FeedbackClass string

const (
	FeedbackCorrect   FeedbackClass = "correct"
	FeedbackIncorrect FeedbackClass = "incorrect"
)

// Surface is the presentation a session renders into. The host UI owns it.
type Surface interface {
	SetHeader(text string)
	SetProgress(text string)
	SetGenre(text string)
	SetQuestion(text string)

	// ResetOptions removes every option control together with its binding.
	ResetOptions()
	// AddOption appends an option control that calls onSelect when activated.
	AddOption(label string, onSelect func())
	DisableOptions()
	// HighlightOption marks the option whose label equals label.
	HighlightOption(label string)

	ShowFeedback(text string, class FeedbackClass)
	HideFeedback()
	ShowExplanation(text string)
	HideExplanation()
	ShowNext()
	HideNext()
}

// Navigator moves the host away from the quiz once it is finished.
type Navigator interface {
	Navigate(target string)
}

// Fetcher loads the quiz set for a difficulty.
type Fetcher interface {
	FetchQuizzes(ctx context.Context, difficulty entities.Difficulty) ([]entities.Quiz, error)
}
