package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/session"
)

type optionButton struct {
	label       string
	onSelect    func()
	disabled    bool
	highlighted bool
}

// quizView is the Telegram rendition of a quiz page. It implements
// session.Surface and session.Navigator; the handler renders it into a single
// message after every session operation.
type quizView struct {
	header   string
	progress string
	genre    string
	question string

	options []optionButton

	feedback        string
	feedbackClass   session.FeedbackClass
	feedbackVisible bool

	explanation        string
	explanationVisible bool

	nextVisible bool

	destination string

	// dirty is set by every mutation and cleared by render.
	dirty bool
}

func newQuizView() *quizView {
	return &quizView{}
}

func (v *quizView) SetHeader(text string)   { v.header = text; v.dirty = true }
func (v *quizView) SetProgress(text string) { v.progress = text; v.dirty = true }
func (v *quizView) SetGenre(text string)    { v.genre = text; v.dirty = true }
func (v *quizView) SetQuestion(text string) { v.question = text; v.dirty = true }

func (v *quizView) ResetOptions() {
	v.options = nil
	v.dirty = true
}

func (v *quizView) AddOption(label string, onSelect func()) {
	v.options = append(v.options, optionButton{label: label, onSelect: onSelect})
	v.dirty = true
}

func (v *quizView) DisableOptions() {
	for i := range v.options {
		v.options[i].disabled = true
	}
	v.dirty = true
}

func (v *quizView) HighlightOption(label string) {
	for i := range v.options {
		if v.options[i].label == label {
			v.options[i].highlighted = true
		}
	}
	v.dirty = true
}

func (v *quizView) ShowFeedback(text string, class session.FeedbackClass) {
	v.feedback = text
	v.feedbackClass = class
	v.feedbackVisible = true
	v.dirty = true
}

func (v *quizView) HideFeedback() {
	v.feedbackVisible = false
	v.dirty = true
}

func (v *quizView) ShowExplanation(text string) {
	v.explanation = text
	v.explanationVisible = true
	v.dirty = true
}

func (v *quizView) HideExplanation() {
	v.explanationVisible = false
	v.dirty = true
}

func (v *quizView) ShowNext() {
	v.nextVisible = true
	v.dirty = true
}

func (v *quizView) HideNext() {
	v.nextVisible = false
	v.dirty = true
}

// Navigate records the results destination.
func (v *quizView) Navigate(target string) {
	v.destination = target
	v.dirty = true
}

// Select activates the option at index. Out-of-range indexes are ignored.
func (v *quizView) Select(index int) bool {
	if index < 0 || index >= len(v.options) {
		return false
	}
	v.options[index].onSelect()
	return true
}

// render builds MarkdownV2 text and the inline keyboard for the view. Buttons
// are bound to the session and the position of the quiz on screen.
func (v *quizView) render(sessionID string, quizIndex int) (string, *tgbotapi.InlineKeyboardMarkup) {
	v.dirty = false

	var sb strings.Builder
	if v.header != "" {
		sb.WriteString(bold(v.header))
		sb.WriteString("\n")
	}
	if v.progress != "" {
		sb.WriteString(md(v.progress))
		sb.WriteString("\n")
	}
	if v.genre != "" {
		sb.WriteString(italic("【" + v.genre + "】"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md(v.question))

	if v.feedbackVisible {
		sb.WriteString("\n\n")
		if v.feedbackClass == session.FeedbackCorrect {
			sb.WriteString(bold(v.feedback))
		} else {
			sb.WriteString(italic(v.feedback))
		}
	}

	if v.explanationVisible {
		sb.WriteString("\n\n")
		sb.WriteString(md(msgExplanationTitle))
		sb.WriteString("\n")
		sb.WriteString(md(v.explanation))
	}

	return sb.String(), v.keyboard(sessionID, quizIndex)
}

func (v *quizView) keyboard(sessionID string, quizIndex int) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, opt := range v.options {
		label := opt.label
		switch {
		case opt.highlighted:
			label = highlightMark + label
		case opt.disabled:
			label = disabledMark + label
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(sessionID, quizIndex, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	if v.nextVisible {
		button := tgbotapi.NewInlineKeyboardButtonData(btnNext, buildQuizNextCallback(sessionID, quizIndex))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	if len(rows) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
