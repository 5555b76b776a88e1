package entities

import "time"

// Drill holds the queue state shared by learning and review sessions.
// Queue only ever holds words of WorkingSet. A word answered without
// leaving the working set may sit in neither Queue nor Cursor until the
// next refill.
type Drill struct {
	WorkingSet []Word // words still to be finished in this session
	Queue      []Word // presentation order of the current round
	Cursor     *Word  // word currently being drilled
	Phase      Phase  // state machine position
}

// Pop moves the head of the queue to the cursor.
func (d *Drill) Pop() bool {
	if len(d.Queue) == 0 {
		return false
	}
	next := d.Queue[0]
	d.Queue = d.Queue[1:]
	d.Cursor = &next
	return true
}

// Remove drops the word with key from the working set and the queue.
func (d *Drill) Remove(key string) {
	d.WorkingSet = removeWord(d.WorkingSet, key)
	d.Queue = removeWord(d.Queue, key)
}

// Replace overwrites every copy of w held by the drill, the cursor included.
func (d *Drill) Replace(w Word) {
	key := w.Key()
	for i := range d.WorkingSet {
		if d.WorkingSet[i].Key() == key {
			d.WorkingSet[i] = w
		}
	}
	for i := range d.Queue {
		if d.Queue[i].Key() == key {
			d.Queue[i] = w
		}
	}
	if d.Cursor != nil && d.Cursor.Key() == key {
		c := w
		d.Cursor = &c
	}
}

// Insert places w into the queue at position i, clamped to the queue bounds.
func (d *Drill) Insert(i int, w Word) {
	i = max(0, min(i, len(d.Queue)))
	d.Queue = append(d.Queue, Word{})
	copy(d.Queue[i+1:], d.Queue[i:])
	d.Queue[i] = w
}

// Finish clears the drill and marks it completed.
func (d *Drill) Finish() {
	d.WorkingSet = nil
	d.Queue = nil
	d.Cursor = nil
	d.Phase = PhaseCompleted
}

func removeWord(words []Word, key string) []Word {
	out := words[:0]
	for _, w := range words {
		if w.Key() != key {
			out = append(out, w)
		}
	}
	return out
}

// LearningSession is the per-learner state of a first-exposure session.
type LearningSession struct {
	ID        string
	LearnerID string
	Drill

	Progress  map[string]int      // normalized target -> consecutive correct answers
	Presented map[string]struct{} // normalized targets already shown once

	StartedAt time.Time
}

// NewLearningSession creates a learning session over copies of words.
func NewLearningSession(id, learnerID string, words []Word, now time.Time) *LearningSession {
	s := &LearningSession{
		ID:        id,
		LearnerID: learnerID,
		Drill:     Drill{WorkingSet: append([]Word(nil), words...)},
		Progress:  make(map[string]int, len(words)),
		Presented: make(map[string]struct{}, len(words)),
		StartedAt: now,
	}
	for _, w := range words {
		s.Progress[w.Key()] = 0
	}
	return s
}

// WasPresented reports whether the word was already shown in this session.
func (s *LearningSession) WasPresented(w Word) bool {
	_, ok := s.Presented[w.Key()]
	return ok
}

// ReviewSession is the per-learner state of a review session.
type ReviewSession struct {
	ID        string
	LearnerID string
	Drill

	StartedAt time.Time
}

// NewReviewSession creates a review session over copies of due words.
func NewReviewSession(id, learnerID string, words []Word, now time.Time) *ReviewSession {
	return &ReviewSession{
		ID:        id,
		LearnerID: learnerID,
		Drill:     Drill{WorkingSet: append([]Word(nil), words...)},
		StartedAt: now,
	}
}
