package storage

import (
	"sync"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

type clientState struct {
	learnerID string
	activity  entities.Activity
}

// ClientStorage keeps the learner and activity selected by each chat.
type ClientStorage struct {
	mu      sync.RWMutex
	clients map[int64]clientState
}

func NewClientStorage() *ClientStorage {
	return &ClientStorage{
		clients: make(map[int64]clientState),
	}
}

func (s *ClientStorage) Learner(clientID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientID]
	if !ok || c.learnerID == "" {
		return "", false
	}
	return c.learnerID, true
}

func (s *ClientStorage) SetLearner(clientID int64, learnerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.clients[clientID]
	c.learnerID = learnerID
	s.clients[clientID] = c
}

func (s *ClientStorage) Activity(clientID int64) entities.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.clients[clientID].activity
}

func (s *ClientStorage) SetActivity(clientID int64, activity entities.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.clients[clientID]
	c.activity = activity
	s.clients[clientID] = c
}
