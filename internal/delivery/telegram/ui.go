package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

// buildDifficultyKeyboard builds the difficulty selection keyboard.
func buildDifficultyKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range entities.Difficulties() {
		button := tgbotapi.NewInlineKeyboardButtonData(d.Label(), buildDifficultyCallback(d))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for the results screen.
// resultURL may be empty, in which case no link is shown.
func buildResultKeyboard(difficulty entities.Difficulty, resultURL string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if retry := buildDifficultyCallback(difficulty); fitsCallbackData(retry) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRetry, retry),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnMenu, buildMenuCallback()),
	))

	if resultURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(btnResultPage, resultURL),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
