package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

// ProgressSummary counts a learner's words by state.
type ProgressSummary struct {
	LearnerID string
	Total     int
	Learned   int
	Unlearned int
	Due       int
}

// ProgressService reports word counts without touching sessions.
type ProgressService struct {
	words    WordRepository
	learners LearnerRepository
	now      func() time.Time
}

func NewProgressService(words WordRepository, learners LearnerRepository) *ProgressService {
	return &ProgressService{words: words, learners: learners, now: time.Now}
}

// GetProgressSummary returns the counts of a single learner.
func (s *ProgressService) GetProgressSummary(ctx context.Context, learnerID string) (*ProgressSummary, error) {
	if learnerID == "" {
		return nil, ErrNoUserSelected
	}

	words, err := s.words.Load(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: load words: %w", ErrPersistence, err)
	}

	return summarize(learnerID, words, s.now()), nil
}

// Overview returns the counts of every known learner.
func (s *ProgressService) Overview(ctx context.Context) ([]*ProgressSummary, error) {
	learners, err := s.learners.Learners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	slices.Sort(learners)

	out := make([]*ProgressSummary, 0, len(learners))
	for _, id := range learners {
		summary, err := s.GetProgressSummary(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}

	return out, nil
}

func summarize(learnerID string, words []entities.Word, now time.Time) *ProgressSummary {
	s := &ProgressSummary{LearnerID: learnerID, Total: len(words)}
	for _, w := range words {
		if !w.IsLearned() {
			s.Unlearned++
			continue
		}
		s.Learned++
		if w.IsDue(now) {
			s.Due++
		}
	}
	return s
}
