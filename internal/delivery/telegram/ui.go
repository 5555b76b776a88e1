package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects callback data longer than this many bytes.
const maxCallbackData = 64

// buildLearnerKeyboard builds one button per learner. Learners whose
// callback data would not fit are left out and can be picked with /learner.
func buildLearnerKeyboard(learners []string) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range learners {
		if !fitsCallback(l) {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 "+l, buildLearnerCallback(l)),
		))
	}

	if len(rows) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// fitsCallback reports whether the learner can be selected with a button.
func fitsCallback(learnerID string) bool {
	return len(buildLearnerCallback(learnerID)) <= maxCallbackData
}

// buildActivityKeyboard builds the keyboard shown after a learner is selected
// and after a session ends.
func buildActivityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Learn new words", buildActivityCallback(activityLearn)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Review", buildActivityCallback(activityReview)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", buildStatsCallback()),
		),
	)
}

// buildSessionKeyboard lets the learner abandon a running session.
func buildSessionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ Stop", buildStopCallback()),
		),
	)
}
