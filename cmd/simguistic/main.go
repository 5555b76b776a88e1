package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/app"
	"github.com/aliskhannn/simguistic/internal/config"
	"github.com/aliskhannn/simguistic/internal/delivery/telegram"
	"github.com/aliskhannn/simguistic/internal/domain/entities"
	"github.com/aliskhannn/simguistic/internal/logger"
	"github.com/aliskhannn/simguistic/internal/service"
	"github.com/aliskhannn/simguistic/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	token, err := cfg.BotToken()
	if err != nil {
		lg.Fatal("telegram token is not configured", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "learners", Description: "List learners"},
		{Command: "learner", Description: "Select a learner (usage: /learner name)"},
		{Command: "learn", Description: "Learn new words"},
		{Command: "review", Description: "Review due words"},
		{Command: "stats", Description: "Show word counts"},
		{Command: "stop", Description: "End the current session"},
		{Command: "help", Description: "Help"},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	store, closeStore, err := app.OpenStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open word store", zap.Error(err))
	}
	defer closeStore()

	// In-memory session state.
	learningSessions := storage.NewSessionStorage[*entities.LearningSession]()
	reviewSessions := storage.NewSessionStorage[*entities.ReviewSession]()
	clients := storage.NewClientStorage()

	// One lock table so learning and review never interleave writes for a learner.
	locks := service.NewLearnerLocks()

	learningService := service.NewLearningService(store, learningSessions, cfg.Learning.BatchSize, lg, service.WithLocks(locks))
	reviewService := service.NewReviewService(store, reviewSessions, lg, service.WithLocks(locks))
	userService := service.NewUserService(store, clients)
	progressService := service.NewProgressService(store, store)

	sweeper := service.NewSessionSweeper(cfg.Session.SweepSchedule, cfg.Session.IdleTTL, lg, learningSessions, reviewSessions)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("session sweeper failed", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		learningService,
		reviewService,
		progressService,
		telegram.DefaultAnswerDelay,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
