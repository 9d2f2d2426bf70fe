// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

const (
	msgWelcome           = "けんぽうクイズへようこそ！\n日本国憲法について楽しく学びましょう。\n\n難易度をえらんでください。"
	msgChooseDifficulty  = "難易度をえらんでください。"
	msgLoading           = "クイズを読み込み中..."
	msgQuizExpired       = "このクイズは終了しています。新しいクイズを始めてください。"
	msgInvalidOption     = "その選択肢は見つかりません。"
	msgHistoryDisabled   = "結果の記録は現在利用できません。"
	msgHistoryEmpty      = "まだ結果がありません。/quiz でクイズに挑戦しましょう！"
	msgHistoryTitle      = "📊 最近の結果"
	msgResultTitle       = "🏁 けんぽうクイズ 結果"
	msgResultPerfect     = "全問正解！すばらしい！🎉"
	msgResultGood        = "よくできました！👏"
	msgResultRetry       = "もう一度チャレンジしてみよう！💪"
	msgExplanationTitle  = "📖 解説"
	msgInternalError     = "エラーが発生しました。しばらくしてからもう一度お試しください。"
	msgUseCommands       = "コマンドを使ってください。/help で一覧を表示します。"
	msgUnknownCommand    = "不明なコマンドです。\n\n" + msgHelp
	msgHelp              = "/start — はじめる\n/quiz — 難易度をえらんでクイズを始める\n/quiz easy|normal|hard — すぐにクイズを始める\n/history — 最近の結果\n/help — ヘルプ"
	btnNext              = "次の問題へ ▶️"
	btnRetry             = "もう一度挑戦する 🔄"
	btnMenu              = "難易度をえらぶ 📋"
	btnResultPage        = "結果ページを開く 🔗"
	highlightMark        = "✅ "
	disabledMark         = "▫️ "
	goodResultPercentage = 60
	historyTimeLayout    = "2006-01-02 15:04"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// parseResultTarget reads score and total from a results destination.
// Missing or malformed values read as 0.
func parseResultTarget(target string) (score, total int) {
	u, err := url.Parse(target)
	if err != nil {
		return 0, 0
	}

	q := u.Query()
	return atoiOrZero(q.Get("score")), atoiOrZero(q.Get("total"))
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// resultPageURL joins the configured result page root with the destination.
func resultPageURL(baseURL, target string) string {
	if baseURL == "" || target == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + target
}

// formatResult formats the results screen.
func formatResult(res *entities.QuizResult) string {
	percentage := res.Percentage()

	comment := msgResultRetry
	switch {
	case res.Total > 0 && res.Score == res.Total:
		comment = msgResultPerfect
	case percentage >= goodResultPercentage:
		comment = msgResultGood
	}

	return fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s",
		bold(msgResultTitle),
		md(fmt.Sprintf("難易度: %s", res.Difficulty.Label())),
		bold(fmt.Sprintf("%d問中 %d問正解 (%.0f%%)", res.Total, res.Score, percentage)),
		md(comment),
	)
}

// formatHistory formats the latest results of a chat.
func formatHistory(results []*entities.QuizResult) string {
	if len(results) == 0 {
		return md(msgHistoryEmpty)
	}

	var sb strings.Builder
	sb.WriteString(bold(msgHistoryTitle))
	sb.WriteString("\n")
	for _, res := range results {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf(
			"%s  %s  %d/%d",
			res.FinishedAt.Format(historyTimeLayout),
			res.Difficulty.Label(),
			res.Score,
			res.Total,
		)))
	}

	return sb.String()
}
