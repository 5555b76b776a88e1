// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/simguistic/internal/service"
)

const (
	msgWelcome = "👋 <b>Karibu!</b>\n\n" +
		"This bot drills English → Swahili vocabulary with spaced repetition.\n\n" +
		"Pick a learner to begin, or use /learner <i>name</i>."
	msgHelp = "<b>Commands</b>\n\n" +
		"/learners — list learners\n" +
		"/learner <i>name</i> — select a learner\n" +
		"/learn — learn new words\n" +
		"/review — review due words\n" +
		"/stats — word counts\n" +
		"/stop — end the current session\n\n" +
		"While a session is running, just type your answers."
	msgNoLearners      = "No learners found. Import a word list first."
	msgChooseLearner   = "Choose a learner:"
	msgUseLearner      = "Use: /learner <i>name</i>"
	msgChooseActivity  = "What would you like to do?"
	msgNoLearner       = "No learner selected. Use /learners to pick one."
	msgLearnerNotFound = "Learner not found. Use /learners to see who is available."
	msgNoActiveWord    = "There is no active session. Use /learn or /review to start one."
	msgNoActivity      = "Start a session with /learn or /review first."
	msgStopped         = "Session stopped. Progress on learned words is saved."
	msgNothingToStop   = "There is no running session."
	msgInternalError   = "Something went wrong. Please try again later."
	msgUnknownCommand  = "Unknown command. See /help."
	msgTapToContinue   = "Send any message when you are ready."
	msgTypeToContinue  = "Type it exactly to continue."
	msgSessionComplete = "🎉 Session complete!"
)

func esc(s string) string {
	return html.EscapeString(s)
}

func bold(s string) string {
	return "<b>" + esc(s) + "</b>"
}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func buildLearnerSelectedMessage(learnerID string) string {
	return fmt.Sprintf("✅ Learner %s selected.\n\n%s", bold(learnerID), msgChooseActivity)
}

func buildLearnersMessage(summaries []*service.ProgressSummary, current string) string {
	var (
		b       strings.Builder
		skipped bool
	)
	b.WriteString(msgChooseLearner)
	b.WriteString("\n")
	for _, s := range summaries {
		b.WriteString("\n• ")
		if s.LearnerID == current {
			b.WriteString(bold(s.LearnerID) + " (current)")
		} else {
			b.WriteString(esc(s.LearnerID))
		}
		fmt.Fprintf(&b, ": %d learned, %d due", s.Learned, s.Due)

		if !fitsCallback(s.LearnerID) {
			skipped = true
		}
	}
	if skipped {
		b.WriteString("\n\nSome names are too long for a button. " + msgUseLearner)
	}
	return b.String()
}

func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
