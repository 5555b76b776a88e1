package service

import "sync"

// LearnerLocks serializes work on a single learner's sessions and words.
type LearnerLocks struct {
	mu    sync.Mutex
	locks map[string]*learnerLock
}

type learnerLock struct {
	mu   sync.Mutex
	refs int
}

// NewLearnerLocks creates an empty lock table.
func NewLearnerLocks() *LearnerLocks {
	return &LearnerLocks{locks: make(map[string]*learnerLock)}
}

// Lock blocks until the learner's lock is held and returns the release func.
func (l *LearnerLocks) Lock(learnerID string) (unlock func()) {
	l.mu.Lock()
	lk, ok := l.locks[learnerID]
	if !ok {
		lk = &learnerLock{}
		l.locks[learnerID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()

	return func() {
		lk.mu.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, learnerID)
		}
		l.mu.Unlock()
	}
}
