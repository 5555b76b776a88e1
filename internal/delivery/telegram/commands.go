package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
	"github.com/aliskhannn/simguistic/internal/service"
)

// startHandler greets the user and offers the known learners.
func (h *Handler) startHandler(clientID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learners, err := h.userService.Learners(ctx)
		if err != nil {
			return err
		}

		if current, ok := h.userService.CurrentLearner(clientID); ok {
			msg := newHTMLMessage(chatID, msgWelcome+"\n\n"+buildLearnerSelectedMessage(current))
			msg.ReplyMarkup = buildActivityKeyboard()
			h.send(msg)
			return nil
		}

		msg := newHTMLMessage(chatID, msgWelcome)
		if kb := buildLearnerKeyboard(learners); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

// learnersHandler lists the learners known to the word store with their
// word counts.
func (h *Handler) learnersHandler(clientID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summaries, err := h.progressService.Overview(ctx)
		if err != nil {
			return err
		}

		if len(summaries) == 0 {
			h.send(newHTMLMessage(chatID, msgNoLearners))
			return nil
		}

		learners := make([]string, 0, len(summaries))
		for _, s := range summaries {
			learners = append(learners, s.LearnerID)
		}

		current, _ := h.userService.CurrentLearner(clientID)
		msg := newHTMLMessage(chatID, buildLearnersMessage(summaries, current))
		if kb := buildLearnerKeyboard(learners); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

// selectLearnerHandler makes learnerID the client's current learner.
func (h *Handler) selectLearnerHandler(clientID int64, learnerID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learnerID = strings.TrimSpace(learnerID)
		if learnerID == "" {
			h.send(newHTMLMessage(chatID, msgUseLearner))
			return nil
		}

		if err := h.userService.SelectLearner(ctx, clientID, learnerID); err != nil {
			return err
		}

		h.logger.Info("learner selected",
			zap.Int64("user_id", clientID),
			zap.String("learner_id", learnerID),
		)

		msg := newHTMLMessage(chatID, buildLearnerSelectedMessage(learnerID))
		msg.ReplyMarkup = buildActivityKeyboard()
		h.send(msg)
		return nil
	}
}

// learnHandler starts a learning session for the current learner.
func (h *Handler) learnHandler(clientID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learnerID, ok := h.userService.CurrentLearner(clientID)
		if !ok {
			return service.ErrNoUserSelected
		}

		res, err := h.learningService.StartLearning(ctx, learnerID)
		if err != nil {
			return err
		}

		// An empty start leaves the other activity's session running.
		if !sessionEnded(res) {
			h.reviewService.Stop(learnerID)
			h.userService.SetActivity(clientID, entities.ActivityLearning)
		}
		h.respond(ctx, chatID, res)
		return nil
	}
}

// reviewHandler starts a review session over the current learner's due words.
func (h *Handler) reviewHandler(clientID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learnerID, ok := h.userService.CurrentLearner(clientID)
		if !ok {
			return service.ErrNoUserSelected
		}

		res, err := h.reviewService.StartReview(ctx, learnerID)
		if err != nil {
			return err
		}

		// An empty start leaves the other activity's session running.
		if !sessionEnded(res) {
			h.learningService.Stop(learnerID)
			h.userService.SetActivity(clientID, entities.ActivityReview)
		}
		h.respond(ctx, chatID, res)
		return nil
	}
}

// answerHandler routes free text to the engine of the client's activity.
func (h *Handler) answerHandler(clientID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learnerID, ok := h.userService.CurrentLearner(clientID)
		if !ok {
			return service.ErrNoUserSelected
		}

		activity := h.userService.Activity(clientID)

		var drill DrillService
		switch activity {
		case entities.ActivityLearning:
			drill = h.learningService
		case entities.ActivityReview:
			drill = h.reviewService
		default:
			h.send(newHTMLMessage(chatID, msgNoActivity))
			return nil
		}

		res, err := drill.SubmitAnswer(ctx, learnerID, text)
		if errors.Is(err, service.ErrNoActiveWord) {
			h.userService.SetActivity(clientID, entities.ActivityNone)
		}
		if err != nil {
			return err
		}

		h.switchActivity(clientID, res, activity)
		h.respond(ctx, chatID, res)
		return nil
	}
}

// statsHandler shows word counts of the current learner.
func (h *Handler) statsHandler(clientID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learnerID, ok := h.userService.CurrentLearner(clientID)
		if !ok {
			return service.ErrNoUserSelected
		}

		summary, err := h.progressService.GetProgressSummary(ctx, learnerID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, renderStats(summary))
		msg.ReplyMarkup = buildActivityKeyboard()
		h.send(msg)
		return nil
	}
}

// stopHandler discards any running session of the current learner.
func (h *Handler) stopHandler(clientID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learnerID, ok := h.userService.CurrentLearner(clientID)
		if !ok {
			return service.ErrNoUserSelected
		}

		learning := h.learningService.Stop(learnerID)
		review := h.reviewService.Stop(learnerID)
		h.userService.SetActivity(clientID, entities.ActivityNone)

		text := msgNothingToStop
		if learning || review {
			text = msgStopped
		}

		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = buildActivityKeyboard()
		h.send(msg)
		return nil
	}
}

// switchActivity records the activity while its session is alive and
// clears it once the session is gone.
func (h *Handler) switchActivity(clientID int64, res *entities.Result, activity entities.Activity) {
	if sessionEnded(res) {
		activity = entities.ActivityNone
	}
	h.userService.SetActivity(clientID, activity)
}

// respond sends the rendered result, pausing between feedback and the
// next prompt when the engine asks for it.
func (h *Handler) respond(ctx context.Context, chatID int64, res *entities.Result) {
	feedback, prompt := renderResult(res)

	var kb tgbotapi.InlineKeyboardMarkup
	if sessionEnded(res) {
		kb = buildActivityKeyboard()
	} else {
		kb = buildSessionKeyboard()
	}

	if prompt == "" {
		msg := newHTMLMessage(chatID, feedback)
		msg.ReplyMarkup = kb
		h.send(msg)
		return
	}

	msg := newHTMLMessage(chatID, prompt)
	msg.ReplyMarkup = kb

	if feedback == "" {
		h.send(msg)
		return
	}

	h.send(newHTMLMessage(chatID, feedback))
	if !res.SuggestedDelay || h.delay <= 0 {
		h.send(msg)
		return
	}

	// The pause must not hold up the update loop for other chats.
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()

		timer := time.NewTimer(h.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
			h.send(msg)
		}
	}()
}
