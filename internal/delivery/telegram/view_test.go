package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/kenpo-quiz-bot/internal/session"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	data := decodeCallback(buildQuizAnswerCallback("3f2a", 4, 2))
	assert.Equal(t, actionQuiz, data.Action)
	assert.Equal(t, []string{"3f2a", "4", quizAnswer, "2"}, data.Params)

	data = decodeCallback(buildQuizNextCallback("3f2a", 4))
	assert.Equal(t, []string{"3f2a", "4", quizNext}, data.Params)

	data = decodeCallback(buildMenuCallback())
	assert.Equal(t, actionMenu, data.Action)
	assert.Empty(t, data.Params)
}

func TestCallbackDataFitsWithUUID(t *testing.T) {
	id := "123e4567-e89b-12d3-a456-426614174000"
	assert.True(t, fitsCallbackData(buildQuizAnswerCallback(id, 999, 99)))
	assert.True(t, fitsCallbackData(buildQuizNextCallback(id, 999)))
	assert.False(t, fitsCallbackData(buildDifficultyCallback(entities.Difficulty(strings.Repeat("x", 60)))))
}

func TestViewTracksChanges(t *testing.T) {
	v := newQuizView()
	assert.False(t, v.dirty)

	v.SetQuestion("Q")
	assert.True(t, v.dirty)

	v.render("s", 0)
	assert.False(t, v.dirty)

	v.Navigate("/result?score=1&total=2")
	assert.True(t, v.dirty)
	assert.Equal(t, "/result?score=1&total=2", v.destination)
}

func TestViewSelect(t *testing.T) {
	v := newQuizView()
	var picked []string
	v.AddOption("a", func() { picked = append(picked, "a") })
	v.AddOption("b", func() { picked = append(picked, "b") })

	assert.True(t, v.Select(1))
	assert.False(t, v.Select(2))
	assert.False(t, v.Select(-1))
	assert.Equal(t, []string{"b"}, picked)
}

func TestViewRender(t *testing.T) {
	v := newQuizView()
	v.SetHeader("H")
	v.SetProgress("第1問 / 2問")
	v.SetGenre("人権")
	v.SetQuestion("Q?")
	v.AddOption("a", func() {})
	v.AddOption("b", func() {})

	text, kb := v.render("s", 0)
	assert.Equal(t, "*H*\n第1問 / 2問\n_【人権】_\n\nQ?", text)
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "a", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "quiz:s:0:answer:0", *kb.InlineKeyboard[0][0].CallbackData)

	v.DisableOptions()
	v.HighlightOption("b")
	v.ShowFeedback("ok!", session.FeedbackCorrect)
	v.ShowExplanation("because")
	v.ShowNext()

	text, kb = v.render("s", 0)
	assert.True(t, strings.HasSuffix(text, "*ok\\!*\n\n"+md(msgExplanationTitle)+"\nbecause"))
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, disabledMark+"a", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, highlightMark+"b", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "quiz:s:0:next", *kb.InlineKeyboard[2][0].CallbackData)

	v.HideFeedback()
	v.HideExplanation()
	v.HideNext()
	v.ResetOptions()

	text, kb = v.render("s", 0)
	assert.NotContains(t, text, "ok")
	assert.Nil(t, kb)
}

func TestViewIncorrectFeedbackIsItalic(t *testing.T) {
	v := newQuizView()
	v.ShowFeedback("no", session.FeedbackIncorrect)

	text, _ := v.render("s", 0)
	assert.True(t, strings.HasSuffix(text, "_no_"))
}

func TestParseResultTarget(t *testing.T) {
	tests := []struct {
		target       string
		score, total int
	}{
		{"/result?score=3&total=5", 3, 5},
		{"/result?score=0&total=0", 0, 0},
		{"/result", 0, 0},
		{"/result?score=x&total=2", 0, 2},
		{"%zz", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			score, total := parseResultTarget(tt.target)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestResultPageURL(t *testing.T) {
	assert.Equal(t, "https://a.example/result?score=1&total=2",
		resultPageURL("https://a.example/", "/result?score=1&total=2"))
	assert.Empty(t, resultPageURL("", "/result?score=1&total=2"))
	assert.Empty(t, resultPageURL("https://a.example", ""))
}

func TestFormatResultComment(t *testing.T) {
	tests := []struct {
		name         string
		score, total int
		want         string
	}{
		{"perfect", 5, 5, msgResultPerfect},
		{"good", 3, 5, msgResultGood},
		{"retry", 1, 5, msgResultRetry},
		{"empty", 0, 0, msgResultRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := entities.NewQuizResult(1, 1, entities.DifficultyNormal, tt.score, tt.total)
			text := formatResult(res)
			assert.Contains(t, text, md(tt.want))
			assert.Contains(t, text, "ふつう")
		})
	}
}

func TestFormatHistory(t *testing.T) {
	finished := time.Date(2024, 5, 3, 9, 30, 0, 0, time.UTC)
	results := []*entities.QuizResult{
		{Difficulty: entities.DifficultyHard, Score: 2, Total: 4, FinishedAt: finished},
		{Difficulty: entities.Difficulty("legacy"), Score: 1, Total: 1, FinishedAt: finished},
	}

	text := formatHistory(results)
	assert.Contains(t, text, md("2024-05-03 09:30  むずかしい  2/4"))
	assert.Contains(t, text, md("2024-05-03 09:30  Unknown  1/1"))
	assert.Equal(t, md(msgHistoryEmpty), formatHistory(nil))
}

func TestResultKeyboard(t *testing.T) {
	kb := buildResultKeyboard(entities.DifficultyEasy, "")
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "difficulty:easy", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "menu", *kb.InlineKeyboard[1][0].CallbackData)

	kb = buildResultKeyboard(entities.Difficulty(strings.Repeat("x", 60)), "https://a.example/result")
	require.Len(t, kb.InlineKeyboard, 2, "oversized retry callback is dropped")
	assert.Equal(t, "menu", *kb.InlineKeyboard[0][0].CallbackData)
	require.NotNil(t, kb.InlineKeyboard[1][0].URL)
}
