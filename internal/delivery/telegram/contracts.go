package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
	"github.com/aliskhannn/simguistic/internal/service"
)

// Bot is the subset of *tgbotapi.BotAPI used by the handler.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	Learners(ctx context.Context) ([]string, error)
	SelectLearner(ctx context.Context, clientID int64, learnerID string) error
	CurrentLearner(clientID int64) (string, bool)
	Activity(clientID int64) entities.Activity
	SetActivity(clientID int64, activity entities.Activity)
}

// DrillService is implemented by both the learning and the review engine.
type DrillService interface {
	SubmitAnswer(ctx context.Context, learnerID, text string) (*entities.Result, error)
	Stop(learnerID string) bool
}

type LearningService interface {
	DrillService
	StartLearning(ctx context.Context, learnerID string) (*entities.Result, error)
}

type ReviewService interface {
	DrillService
	StartReview(ctx context.Context, learnerID string) (*entities.Result, error)
}

type ProgressService interface {
	GetProgressSummary(ctx context.Context, learnerID string) (*service.ProgressSummary, error)
	Overview(ctx context.Context) ([]*service.ProgressSummary, error)
}
