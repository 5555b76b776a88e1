package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// DefaultAnswerDelay is the pause between feedback and the next prompt
// when the engine suggests one.
const DefaultAnswerDelay = 1500 * time.Millisecond

type Handler struct {
	bot             Bot
	logger          *zap.Logger
	userService     UserService
	learningService LearningService
	reviewService   ReviewService
	progressService ProgressService
	delay           time.Duration
	pending         sync.WaitGroup // delayed prompts still to be sent
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	userService UserService,
	learningService LearningService,
	reviewService ReviewService,
	progressService ProgressService,
	delay time.Duration,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     userService,
		learningService: learningService,
		reviewService:   reviewService,
		progressService: progressService,
		delay:           delay,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")
	defer h.pending.Wait()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	clientID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.startHandler(clientID))(ctx, chatID)

		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))

		case "learners":
			_ = h.withErrorHandling(h.learnersHandler(clientID))(ctx, chatID)

		case "learner":
			_ = h.withErrorHandling(h.selectLearnerHandler(clientID, update.Message.CommandArguments()))(ctx, chatID)

		case "learn":
			_ = h.withErrorHandling(h.learnHandler(clientID))(ctx, chatID)

		case "review":
			_ = h.withErrorHandling(h.reviewHandler(clientID))(ctx, chatID)

		case "stats":
			_ = h.withErrorHandling(h.statsHandler(clientID))(ctx, chatID)

		case "stop":
			_ = h.withErrorHandling(h.stopHandler(clientID))(ctx, chatID)

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.answerHandler(clientID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
