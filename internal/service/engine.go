package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

// engine holds what the learning and review services share: the word
// store, per-learner locks and the clock and randomness they drill with.
type engine struct {
	words  WordRepository
	locks  *LearnerLocks
	logger *zap.Logger
	now    func() time.Time
	rnd    Randomizer
	newID  func() string
}

// Option configures a drill service.
type Option func(*engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *engine) { e.now = now }
}

// WithRandomizer replaces the global math/rand source used for queue order.
func WithRandomizer(r Randomizer) Option {
	return func(e *engine) { e.rnd = r }
}

// WithLocks shares a lock table between services working on the same store.
func WithLocks(l *LearnerLocks) Option {
	return func(e *engine) { e.locks = l }
}

func newEngine(words WordRepository, logger *zap.Logger, opts []Option) engine {
	e := engine{
		words:  words,
		locks:  NewLearnerLocks(),
		logger: logger,
		now:    time.Now,
		rnd:    globalRandom{},
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

func (e *engine) load(ctx context.Context, learnerID string) ([]entities.Word, error) {
	words, err := e.words.Load(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: load words: %w", ErrPersistence, err)
	}
	return words, nil
}

// persist writes the status and due time of w back to the learner's list.
// The caller must hold the learner lock.
func (e *engine) persist(ctx context.Context, learnerID string, w entities.Word) error {
	words, err := e.load(ctx, learnerID)
	if err != nil {
		return err
	}

	key := w.Key()
	idx := -1
	for i := range words {
		if words[i].Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q: %w", ErrPersistence, w.Swahili, ErrWordNotFound)
	}

	words[idx].Status = w.Status
	words[idx].Due = w.Due

	if err := e.words.Save(ctx, learnerID, words); err != nil {
		return fmt.Errorf("%w: save words: %w", ErrPersistence, err)
	}

	return nil
}

// selectWords returns copies of the words accepted by keep, skipping
// duplicate targets, up to limit words when limit > 0.
func selectWords(words []entities.Word, limit int, keep func(entities.Word) bool) []entities.Word {
	seen := make(map[string]struct{})
	out := make([]entities.Word, 0, max(limit, 0))
	for _, w := range words {
		if !keep(w) {
			continue
		}
		if _, dup := seen[w.Key()]; dup {
			continue
		}
		seen[w.Key()] = struct{}{}
		out = append(out, w)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
