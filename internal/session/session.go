// Package session implements the quiz session state machine:
// fetch, present, answer, advance and finish.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

// State is the lifecycle stage of a session.
type State int

const (
	StateLoading State = iota
	StatePresenting
	StateAnswered
	StateFinished
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePresenting:
		return "presenting"
	case StateAnswered:
		return "answered"
	case StateFinished:
		return "finished"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further operation can change the session.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateEmpty || s == StateError
}

// Texts written into the surface.
const (
	headerFormat    = "けんぽうクイズ - %s -"
	progressFormat  = "第%d問 / %d問"
	msgNoQuizzes    = "このレベルのクイズはまだありません。ごめんなさい！😢"
	msgFetchFailed  = "エラーが発生しました。もう一度クイズを始めてください。"
	msgCorrect      = "🎉 正解！"
	msgIncorrect    = "😢 不正解..."
	resultTargetFmt = "/result?score=%d&total=%d"
)

// Session drives one quiz run against a Surface.
// It is not safe for concurrent use; the host calls it from a single event loop.
type Session struct {
	difficulty entities.Difficulty
	fetcher    Fetcher
	surface    Surface
	navigator  Navigator
	logger     *zap.Logger
	rnd        *rand.Rand

	quizzes      []entities.Quiz
	currentIndex int
	score        int
	answered     bool
	state        State
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rnd = r
	}
}

// New creates a session for the difficulty. A nil surface makes Start a no-op.
func New(
	difficulty entities.Difficulty,
	fetcher Fetcher,
	surface Surface,
	navigator Navigator,
	logger *zap.Logger,
	opts ...Option,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		difficulty: difficulty,
		fetcher:    fetcher,
		surface:    surface,
		navigator:  navigator,
		logger:     logger,
		state:      StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return s
}

// Start writes the header, resets the counters and loads the quiz set.
func (s *Session) Start(ctx context.Context) {
	if s.surface == nil {
		return
	}

	s.surface.SetHeader(fmt.Sprintf(headerFormat, s.difficulty.Label()))
	s.score = 0
	s.currentIndex = 0
	s.answered = false
	s.state = StateLoading

	s.LoadQuizzes(ctx)
}

// LoadQuizzes fetches, shuffles and presents the quiz set. Failures are
// reported on the surface and never retried.
func (s *Session) LoadQuizzes(ctx context.Context) {
	quizzes, err := s.fetcher.FetchQuizzes(ctx, s.difficulty)
	if err != nil {
		s.logger.Error("failed to fetch quizzes",
			zap.String("difficulty", s.difficulty.String()),
			zap.Error(err),
		)
		s.surface.SetQuestion(msgFetchFailed)
		s.state = StateError
		return
	}

	if len(quizzes) == 0 {
		s.logger.Info("no quizzes for difficulty",
			zap.String("difficulty", s.difficulty.String()),
		)
		s.surface.SetQuestion(msgNoQuizzes)
		s.state = StateEmpty
		return
	}

	s.quizzes = make([]entities.Quiz, len(quizzes))
	copy(s.quizzes, quizzes)
	s.rnd.Shuffle(len(s.quizzes), func(i, j int) {
		s.quizzes[i], s.quizzes[j] = s.quizzes[j], s.quizzes[i]
	})

	s.logger.Debug("quizzes loaded",
		zap.String("difficulty", s.difficulty.String()),
		zap.Int("total", len(s.quizzes)),
	)

	s.DisplayCurrentQuiz()
}

// DisplayCurrentQuiz renders the quiz at the current index.
func (s *Session) DisplayCurrentQuiz() {
	if s.currentIndex < 0 || s.currentIndex >= len(s.quizzes) {
		return
	}

	s.surface.HideFeedback()
	s.surface.HideExplanation()
	s.surface.HideNext()
	s.surface.ResetOptions()
	s.answered = false

	quiz := s.quizzes[s.currentIndex]
	s.surface.SetProgress(fmt.Sprintf(progressFormat, s.currentIndex+1, len(s.quizzes)))
	s.surface.SetGenre(quiz.Genre)
	s.surface.SetQuestion(quiz.Question)

	for _, option := range quiz.Options {
		s.surface.AddOption(option, func() { s.CheckAnswer(option) })
	}

	s.state = StatePresenting
}

// CheckAnswer scores the selection for the current quiz. Only the first
// selection per quiz has any effect.
func (s *Session) CheckAnswer(selected string) {
	if s.answered || s.state != StatePresenting {
		return
	}
	s.answered = true

	quiz := s.quizzes[s.currentIndex]
	if quiz.IsCorrect(selected) {
		s.score++
		s.surface.ShowFeedback(msgCorrect, FeedbackCorrect)
	} else {
		s.surface.ShowFeedback(msgIncorrect, FeedbackIncorrect)
	}

	s.surface.ShowExplanation(quiz.Explanation)
	s.surface.ShowNext()
	s.surface.DisableOptions()
	s.surface.HighlightOption(quiz.Answer)

	s.state = StateAnswered
}

// Advance moves to the next quiz, or navigates to the results once the set
// is exhausted.
func (s *Session) Advance() {
	if s.state != StateAnswered {
		return
	}

	s.currentIndex++
	if s.currentIndex < len(s.quizzes) {
		s.DisplayCurrentQuiz()
		return
	}

	s.state = StateFinished
	s.logger.Debug("quiz finished",
		zap.String("difficulty", s.difficulty.String()),
		zap.Int("score", s.score),
		zap.Int("total", len(s.quizzes)),
	)
	s.navigator.Navigate(ResultTarget(s.score, len(s.quizzes)))
}

// ResultTarget builds the navigation target of the results screen.
func ResultTarget(score, total int) string {
	return fmt.Sprintf(resultTargetFmt, score, total)
}

func (s *Session) Difficulty() entities.Difficulty { return s.difficulty }
func (s *Session) State() State                    { return s.state }
func (s *Session) Score() int                      { return s.score }
func (s *Session) CurrentIndex() int               { return s.currentIndex }
func (s *Session) Total() int                      { return len(s.quizzes) }
func (s *Session) Answered() bool                  { return s.answered }

// Quizzes returns the session's quiz set in presentation order.
func (s *Session) Quizzes() []entities.Quiz {
	out := make([]entities.Quiz, len(s.quizzes))
	copy(out, s.quizzes)
	return out
}
