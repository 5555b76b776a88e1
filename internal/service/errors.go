package service

import "errors"

var (
	ErrNoUserSelected  = errors.New("no user selected")
	ErrNoActiveWord    = errors.New("no word is currently being drilled")
	ErrPersistence     = errors.New("persistence failure")
	ErrWordNotFound    = errors.New("word not found in word list")
	ErrLearnerNotFound = errors.New("learner not found")
)
