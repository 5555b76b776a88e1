package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

const (
	msgReviewStarted = "New review session started"
	msgNothingDue    = "No words are due for review!"
)

// ReviewService drives recall of learned words that are due and moves
// them along the interval ladder.
type ReviewService struct {
	engine
	sessions SessionStorage[*entities.ReviewSession]
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	words WordRepository,
	sessions SessionStorage[*entities.ReviewSession],
	logger *zap.Logger,
	opts ...Option,
) *ReviewService {
	return &ReviewService{
		engine:   newEngine(words, logger, opts),
		sessions: sessions,
	}
}

// StartReview begins a session over every word due at the current time,
// replacing any session already in flight.
func (s *ReviewService) StartReview(ctx context.Context, learnerID string) (*entities.Result, error) {
	if learnerID == "" {
		return nil, ErrNoUserSelected
	}

	unlock := s.locks.Lock(learnerID)
	defer unlock()

	words, err := s.load(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	due := selectWords(words, 0, func(w entities.Word) bool {
		return w.IsDue(now)
	})
	if len(due) == 0 {
		return &entities.Result{
			Phase:     entities.PhaseNothingDue,
			NextPhase: entities.PhaseNothingDue,
			Message:   msgNothingDue,
		}, nil
	}

	sess := entities.NewReviewSession(s.newID(), learnerID, due, now)
	s.next(sess)
	s.sessions.Put(learnerID, sess)

	s.logger.Info("review session started",
		zap.String("session_id", sess.ID),
		zap.String("learner_id", learnerID),
		zap.Int("words", len(due)),
	)

	return s.prompt(sess, entities.PhaseTesting, msgReviewStarted), nil
}

// SubmitAnswer grades one recall attempt. Both outcomes are written to the
// word store before the session moves on.
func (s *ReviewService) SubmitAnswer(ctx context.Context, learnerID, text string) (*entities.Result, error) {
	if learnerID == "" {
		return nil, ErrNoUserSelected
	}

	unlock := s.locks.Lock(learnerID)
	defer unlock()

	sess, ok := s.sessions.Get(learnerID)
	if !ok || sess.Cursor == nil {
		return nil, ErrNoActiveWord
	}
	if sess.Phase != entities.PhaseTesting {
		return nil, fmt.Errorf("%w: review session in phase %s", ErrNoActiveWord, sess.Phase)
	}

	var (
		res *entities.Result
		err error
	)
	if sess.Cursor.Matches(text) {
		res, err = s.recall(ctx, sess)
	} else {
		res, err = s.lapse(ctx, sess)
	}
	if err != nil {
		return nil, err
	}

	if sess.Phase == entities.PhaseCompleted {
		s.sessions.Delete(learnerID)
		s.logger.Info("review session completed",
			zap.String("session_id", sess.ID),
			zap.String("learner_id", learnerID),
		)
	} else {
		s.sessions.Put(learnerID, sess)
	}

	return res, nil
}

// Stop discards the learner's session without touching the word store.
func (s *ReviewService) Stop(learnerID string) bool {
	unlock := s.locks.Lock(learnerID)
	defer unlock()

	if _, ok := s.sessions.Get(learnerID); !ok {
		return false
	}
	s.sessions.Delete(learnerID)
	return true
}

func (s *ReviewService) recall(ctx context.Context, sess *entities.ReviewSession) (*entities.Result, error) {
	w := *sess.Cursor
	next := entities.NextStatus(w.Status)
	updated := w.Schedule(next, entities.DueAt(next, s.now()))

	if err := s.persist(ctx, sess.LearnerID, updated); err != nil {
		return nil, err
	}

	s.logger.Debug("word recalled",
		zap.String("session_id", sess.ID),
		zap.String("word", w.Swahili),
		zap.String("from", string(w.Status)),
		zap.String("to", string(next)),
	)

	sess.Remove(w.Key())
	s.next(sess)

	return s.prompt(sess, entities.PhaseCorrect, msgCorrect), nil
}

func (s *ReviewService) lapse(ctx context.Context, sess *entities.ReviewSession) (*entities.Result, error) {
	w := *sess.Cursor
	updated := w.Schedule(entities.ResetStatus(), entities.ResetDue(s.now()))

	if err := s.persist(ctx, sess.LearnerID, updated); err != nil {
		return nil, err
	}

	s.logger.Debug("word lapsed",
		zap.String("session_id", sess.ID),
		zap.String("word", w.Swahili),
		zap.String("from", string(w.Status)),
	)

	sess.Replace(updated)
	s.requeue(&sess.Drill, updated)
	s.next(sess)

	res := s.prompt(sess, entities.PhaseIncorrect, msgIncorrect)
	res.TargetReveal = w.Swahili
	res.SuggestedDelay = true
	return res, nil
}

func (s *ReviewService) next(sess *entities.ReviewSession) {
	if s.advance(&sess.Drill) {
		sess.Phase = entities.PhaseTesting
	}
}

func (s *ReviewService) prompt(sess *entities.ReviewSession, phase entities.Phase, msg string) *entities.Result {
	res := &entities.Result{
		Phase:     phase,
		NextPhase: sess.Phase,
		Message:   msg,
		Remaining: len(sess.WorkingSet),
	}
	if sess.Cursor != nil {
		res.EnglishPrompt = sess.Cursor.English
	}
	return res
}
