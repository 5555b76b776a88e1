package service

import (
	"context"
	"time"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

// WordRepository persists a learner's word list.
type WordRepository interface {
	// Load returns the learner's words in list order, or an empty slice
	// if the learner has no words yet.
	Load(ctx context.Context, learnerID string) ([]entities.Word, error)
	// Save atomically replaces the learner's word list.
	Save(ctx context.Context, learnerID string, words []entities.Word) error
}

// LearnerRepository lists the learners known to the word store.
type LearnerRepository interface {
	Learners(ctx context.Context) ([]string, error)
}

// SessionStorage keeps one in-flight session per learner.
type SessionStorage[T any] interface {
	Get(learnerID string) (T, bool)
	Put(learnerID string, session T)
	Delete(learnerID string)
}

// ClientStorage remembers which learner and activity a client has selected.
type ClientStorage interface {
	Learner(clientID int64) (string, bool)
	SetLearner(clientID int64, learnerID string)
	Activity(clientID int64) entities.Activity
	SetActivity(clientID int64, activity entities.Activity)
}

// Expirer drops sessions that have been idle since before the given time.
type Expirer interface {
	Expire(before time.Time) int
}
