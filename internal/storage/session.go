package storage

import (
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	session   T
	touchedAt time.Time
}

// SessionStorage provides in-memory storage for drill sessions by learner ID.
type SessionStorage[T any] struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry[T]
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage[T any]() *SessionStorage[T] {
	return &SessionStorage[T]{
		sessions: make(map[string]sessionEntry[T]),
		now:      time.Now,
	}
}

// Put saves the learner's session and marks it as used now.
func (s *SessionStorage[T]) Put(learnerID string, session T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[learnerID] = sessionEntry[T]{session: session, touchedAt: s.now()}
}

// Get retrieves the learner's session.
func (s *SessionStorage[T]) Get(learnerID string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[learnerID]
	return e.session, ok
}

// Delete removes the learner's session.
func (s *SessionStorage[T]) Delete(learnerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, learnerID)
}

// Expire removes sessions last used before the given time and returns
// how many were removed.
func (s *SessionStorage[T]) Expire(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.sessions {
		if e.touchedAt.Before(before) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions.
func (s *SessionStorage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
