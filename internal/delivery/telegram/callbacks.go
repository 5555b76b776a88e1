package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Warn("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil || cb.From == nil {
		return
	}

	clientID := cb.From.ID
	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionLearner:
		fn = h.selectLearnerHandler(clientID, data.param())
	case actionActivity:
		switch data.param() {
		case activityLearn:
			fn = h.learnHandler(clientID)
		case activityReview:
			fn = h.reviewHandler(clientID)
		}
	case actionStats:
		fn = h.statsHandler(clientID)
	case actionStop:
		fn = h.stopHandler(clientID)
	}

	if fn == nil {
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}
