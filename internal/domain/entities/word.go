// Package entities contains domain entities used across the application.
package entities

import (
	"strings"
	"time"
	"unicode"
)

// Word represents one English-Swahili vocabulary pair of a learner's word list.
type Word struct {
	English string     `json:"english"` // source language text shown as the prompt
	Swahili string     `json:"swahili"` // target language text, identity of the word
	Status  Status     `json:"status"`  // position on the repetition ladder, empty if unlearned
	Due     *time.Time `json:"due"`     // next review time, nil if not scheduled
}

// Key returns the normalized target text used to match words.
func (w Word) Key() string {
	return Normalize(w.Swahili)
}

// IsLearned reports whether the word has entered the review ladder.
func (w Word) IsLearned() bool {
	return w.Status != StatusUnlearned
}

// IsDue reports whether a learned word should be reviewed at now.
// A learned word without a due time is due immediately.
func (w Word) IsDue(now time.Time) bool {
	if !w.IsLearned() {
		return false
	}
	return w.Due == nil || !w.Due.After(now)
}

// Schedule returns a copy of the word moved to status with the given due time.
func (w Word) Schedule(status Status, due time.Time) Word {
	w.Status = status
	w.Due = &due
	return w
}

// Matches reports whether the answer equals the word's target text
// after normalization.
func (w Word) Matches(answer string) bool {
	return Normalize(answer) == w.Key()
}

// Normalize folds a string for answer comparison: lower case, punctuation
// removed, surrounding whitespace trimmed and inner runs collapsed.
func Normalize(s string) string {
	s = strings.ToLower(s)

	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
