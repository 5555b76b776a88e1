package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports domain errors to the user and logs the rest.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrNoUserSelected):
			h.sendError(chatID, msgNoLearner)
		case errors.Is(err, service.ErrNoActiveWord):
			h.sendError(chatID, msgNoActiveWord)
		case errors.Is(err, service.ErrLearnerNotFound):
			h.sendError(chatID, msgLearnerNotFound)
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
