package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

const (
	DefaultBatchSize = 3
	masteryStreak    = 3
)

const (
	msgLearningStarted = "New learning session started"
	msgAllLearned      = "All words have been learned!"
	msgTranslate       = "Translate the word."
	msgCorrect         = "Correct!"
	msgWordLearned     = "New word learned!"
	msgIncorrect       = "Incorrect. Please try again."
	msgRetype          = "Type the correct answer to continue."
)

// LearningService drives first exposure of unlearned words until each has
// been answered correctly three times in a row.
type LearningService struct {
	engine
	sessions  SessionStorage[*entities.LearningSession]
	batchSize int
}

// NewLearningService creates a LearningService that picks up to batchSize
// unlearned words per session.
func NewLearningService(
	words WordRepository,
	sessions SessionStorage[*entities.LearningSession],
	batchSize int,
	logger *zap.Logger,
	opts ...Option,
) *LearningService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &LearningService{
		engine:    newEngine(words, logger, opts),
		sessions:  sessions,
		batchSize: batchSize,
	}
}

// StartLearning begins a new session over the first unlearned words of the
// learner's list, replacing any session already in flight.
func (s *LearningService) StartLearning(ctx context.Context, learnerID string) (*entities.Result, error) {
	if learnerID == "" {
		return nil, ErrNoUserSelected
	}

	unlock := s.locks.Lock(learnerID)
	defer unlock()

	words, err := s.load(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	unlearned := selectWords(words, s.batchSize, func(w entities.Word) bool {
		return !w.IsLearned()
	})
	if len(unlearned) == 0 {
		return &entities.Result{
			Phase:     entities.PhaseAllLearned,
			NextPhase: entities.PhaseAllLearned,
			Message:   msgAllLearned,
		}, nil
	}

	sess := entities.NewLearningSession(s.newID(), learnerID, unlearned, s.now())
	s.next(sess)
	s.sessions.Put(learnerID, sess)

	s.logger.Info("learning session started",
		zap.String("session_id", sess.ID),
		zap.String("learner_id", learnerID),
		zap.Int("words", len(unlearned)),
	)

	return s.prompt(sess, sess.Phase, msgLearningStarted), nil
}

// SubmitAnswer feeds one learner input into the session's state machine.
func (s *LearningService) SubmitAnswer(ctx context.Context, learnerID, text string) (*entities.Result, error) {
	if learnerID == "" {
		return nil, ErrNoUserSelected
	}

	unlock := s.locks.Lock(learnerID)
	defer unlock()

	sess, ok := s.sessions.Get(learnerID)
	if !ok || sess.Cursor == nil {
		return nil, ErrNoActiveWord
	}

	var (
		res *entities.Result
		err error
	)
	switch sess.Phase {
	case entities.PhasePresentation:
		sess.Phase = entities.PhaseTesting
		res = s.prompt(sess, entities.PhaseTesting, msgTranslate)
	case entities.PhaseTesting:
		res, err = s.test(ctx, sess, text)
	case entities.PhaseCorrection:
		res = s.correction(sess, text)
	default:
		return nil, fmt.Errorf("%w: learning session in phase %s", ErrNoActiveWord, sess.Phase)
	}
	if err != nil {
		return nil, err
	}

	if sess.Phase == entities.PhaseCompleted {
		s.sessions.Delete(learnerID)
		s.logger.Info("learning session completed",
			zap.String("session_id", sess.ID),
			zap.String("learner_id", learnerID),
		)
	} else {
		s.sessions.Put(learnerID, sess)
	}

	return res, nil
}

// Stop discards the learner's session without touching the word store.
func (s *LearningService) Stop(learnerID string) bool {
	unlock := s.locks.Lock(learnerID)
	defer unlock()

	if _, ok := s.sessions.Get(learnerID); !ok {
		return false
	}
	s.sessions.Delete(learnerID)
	return true
}

func (s *LearningService) test(ctx context.Context, sess *entities.LearningSession, text string) (*entities.Result, error) {
	w := *sess.Cursor
	key := w.Key()

	if !w.Matches(text) {
		sess.Progress[key] = 0
		sess.Phase = entities.PhaseCorrection
		return s.prompt(sess, entities.PhaseCorrection, msgIncorrect), nil
	}

	count := sess.Progress[key] + 1
	if count < masteryStreak {
		sess.Progress[key] = count
		s.next(sess)

		res := s.prompt(sess, entities.PhaseCorrect, msgCorrect)
		res.Progress = count
		return res, nil
	}

	learned := w.Schedule(entities.StatusH4, entities.MasteryDue(s.now()))
	if err := s.persist(ctx, sess.LearnerID, learned); err != nil {
		return nil, err
	}

	sess.Remove(key)
	delete(sess.Progress, key)

	s.logger.Info("word learned",
		zap.String("session_id", sess.ID),
		zap.String("learner_id", sess.LearnerID),
		zap.String("word", w.Swahili),
		zap.Timep("due", learned.Due),
	)

	s.next(sess)

	res := s.prompt(sess, entities.PhaseCorrect, msgWordLearned)
	res.Progress = count
	res.SuggestedDelay = true
	return res, nil
}

func (s *LearningService) correction(sess *entities.LearningSession, text string) *entities.Result {
	if !sess.Cursor.Matches(text) {
		return s.prompt(sess, entities.PhaseCorrection, msgRetype)
	}
	sess.Phase = entities.PhaseTesting
	return s.prompt(sess, entities.PhaseTesting, msgTranslate)
}

// next runs the advancement gate and picks the phase for the new cursor:
// presentation the first time a word comes up, testing afterwards.
func (s *LearningService) next(sess *entities.LearningSession) {
	if !s.advance(&sess.Drill) {
		return
	}
	if sess.WasPresented(*sess.Cursor) {
		sess.Phase = entities.PhaseTesting
		return
	}
	sess.Presented[sess.Cursor.Key()] = struct{}{}
	sess.Phase = entities.PhasePresentation
}

func (s *LearningService) prompt(sess *entities.LearningSession, phase entities.Phase, msg string) *entities.Result {
	res := &entities.Result{
		Phase:     phase,
		NextPhase: sess.Phase,
		Message:   msg,
		Remaining: len(sess.WorkingSet),
	}
	if sess.Cursor == nil {
		return res
	}

	res.EnglishPrompt = sess.Cursor.English
	if sess.Phase == entities.PhasePresentation || sess.Phase == entities.PhaseCorrection {
		res.TargetReveal = sess.Cursor.Swahili
	}
	return res
}
