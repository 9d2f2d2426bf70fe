package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

// maxCallbackDataLen is the Bot API limit for callback_data in bytes.
const maxCallbackDataLen = 64

// Callback action constants.
const (
	actionDifficulty = "difficulty"
	actionQuiz       = "quiz"
	actionMenu       = "menu"
)

// Quiz sub-actions.
const (
	quizAnswer = "answer"
	quizNext   = "next"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// fitsCallbackData reports whether data can be attached to a button.
func fitsCallbackData(data string) bool {
	return len(data) <= maxCallbackDataLen
}

// buildDifficultyCallback builds callback data for starting a quiz of the given difficulty.
func buildDifficultyCallback(d entities.Difficulty) string {
	return callbackData{
		Action: actionDifficulty,
		Params: []string{d.String()},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for selecting an option of the
// quiz at quizIndex.
func buildQuizAnswerCallback(sessionID string, quizIndex, optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sessionID, strconv.Itoa(quizIndex), quizAnswer, strconv.Itoa(optionIndex)},
	}.encode()
}

// buildQuizNextCallback builds callback data for the "next" control shown
// under the quiz at quizIndex.
func buildQuizNextCallback(sessionID string, quizIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sessionID, strconv.Itoa(quizIndex), quizNext},
	}.encode()
}

// buildMenuCallback builds callback data for reopening the difficulty menu.
func buildMenuCallback() string {
	return actionMenu
}
