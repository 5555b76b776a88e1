package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

// UserService resolves which learner a chat client is acting as.
type UserService struct {
	learners LearnerRepository
	clients  ClientStorage
}

func NewUserService(learners LearnerRepository, clients ClientStorage) *UserService {
	return &UserService{learners: learners, clients: clients}
}

// Learners returns the known learners in sorted order.
func (s *UserService) Learners(ctx context.Context) ([]string, error) {
	learners, err := s.learners.Learners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	slices.Sort(learners)
	return learners, nil
}

// SelectLearner makes learnerID the current learner of the client.
func (s *UserService) SelectLearner(ctx context.Context, clientID int64, learnerID string) error {
	learners, err := s.learners.Learners(ctx)
	if err != nil {
		return fmt.Errorf("list learners: %w", err)
	}
	if !slices.Contains(learners, learnerID) {
		return fmt.Errorf("%w: %q", ErrLearnerNotFound, learnerID)
	}

	s.clients.SetLearner(clientID, learnerID)
	s.clients.SetActivity(clientID, entities.ActivityNone)
	return nil
}

// CurrentLearner returns the learner selected by the client, if any.
func (s *UserService) CurrentLearner(clientID int64) (string, bool) {
	return s.clients.Learner(clientID)
}

func (s *UserService) Activity(clientID int64) entities.Activity {
	return s.clients.Activity(clientID)
}

func (s *UserService) SetActivity(clientID int64, activity entities.Activity) {
	s.clients.SetActivity(clientID, activity)
}
