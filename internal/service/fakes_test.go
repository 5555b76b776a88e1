package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
	"github.com/aliskhannn/simguistic/internal/storage"
)

var errStoreDown = errors.New("store down")

type memWordRepo struct {
	mu       sync.Mutex
	words    map[string][]entities.Word
	saves    int
	failSave bool
	failLoad bool
}

func newMemWordRepo() *memWordRepo {
	return &memWordRepo{words: make(map[string][]entities.Word)}
}

func (r *memWordRepo) Load(_ context.Context, learnerID string) ([]entities.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failLoad {
		return nil, errStoreDown
	}
	return slices.Clone(r.words[learnerID]), nil
}

func (r *memWordRepo) Save(_ context.Context, learnerID string, words []entities.Word) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSave {
		return errStoreDown
	}
	r.saves++
	r.words[learnerID] = slices.Clone(words)
	return nil
}

func (r *memWordRepo) Learners(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.words))
	for id := range r.words {
		out = append(out, id)
	}
	return out, nil
}

func (r *memWordRepo) word(learnerID, swahili string) entities.Word {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.words[learnerID] {
		if w.Swahili == swahili {
			return w
		}
	}
	return entities.Word{}
}

// fixedRandom keeps queues in working set order and requeues at pos.
type fixedRandom struct {
	pos int
}

func (fixedRandom) Shuffle(int, func(i, j int)) {}

func (r fixedRandom) IntN(n int) int {
	return min(r.pos, n-1)
}

var testNow = time.Date(2026, 3, 1, 12, 0, 40, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func ptr(t time.Time) *time.Time { return &t }

func newLearning(repo *memWordRepo, batch int) (*LearningService, *storage.SessionStorage[*entities.LearningSession]) {
	sessions := storage.NewSessionStorage[*entities.LearningSession]()
	svc := NewLearningService(repo, sessions, batch, nil,
		WithClock(fixedClock),
		WithRandomizer(fixedRandom{}),
	)
	return svc, sessions
}

func newReview(repo *memWordRepo, r Randomizer) (*ReviewService, *storage.SessionStorage[*entities.ReviewSession]) {
	sessions := storage.NewSessionStorage[*entities.ReviewSession]()
	svc := NewReviewService(repo, sessions, nil,
		WithClock(fixedClock),
		WithRandomizer(r),
	)
	return svc, sessions
}
