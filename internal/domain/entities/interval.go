package entities

import "time"

// Status is a rung of the spaced repetition ladder.
type Status string

const (
	StatusUnlearned Status = ""     // not learned yet
	StatusH4        Status = "h4"   // review in 4 hours
	StatusH24       Status = "h24"  // review in 24 hours
	StatusD6        Status = "d6"   // review in 6 days
	StatusD12       Status = "d12"  // review in 12 days
	StatusD24       Status = "d24"  // review in 24 days
	StatusD48       Status = "d48"  // review in 48 days
	StatusD96       Status = "d96"  // review in 96 days
	StatusD180      Status = "d180" // review in 180 days, the last rung
)

const day = 24 * time.Hour

// Ladder lists the review statuses from the shortest interval to the longest.
var Ladder = []Status{
	StatusH4, StatusH24, StatusD6, StatusD12,
	StatusD24, StatusD48, StatusD96, StatusD180,
}

var intervals = map[Status]time.Duration{
	StatusH4:   4 * time.Hour,
	StatusH24:  24 * time.Hour,
	StatusD6:   6 * day,
	StatusD12:  12 * day,
	StatusD24:  24 * day,
	StatusD48:  48 * day,
	StatusD96:  96 * day,
	StatusD180: 180 * day,
}

// Valid reports whether s is unlearned or one of the ladder rungs.
func (s Status) Valid() bool {
	if s == StatusUnlearned {
		return true
	}
	_, ok := intervals[s]
	return ok
}

// Interval returns the fixed review delay of a ladder status.
func (s Status) Interval() (time.Duration, bool) {
	d, ok := intervals[s]
	return d, ok
}

// NextStatus returns the rung after current. Unknown or empty statuses
// start the ladder at h4, and the last rung saturates.
func NextStatus(current Status) Status {
	for i, s := range Ladder {
		if s != current {
			continue
		}
		if i+1 < len(Ladder) {
			return Ladder[i+1]
		}
		return Ladder[len(Ladder)-1]
	}
	return StatusH4
}

// DueAt returns now plus the interval of status. Statuses outside the
// ladder are scheduled like h4.
func DueAt(status Status, now time.Time) time.Time {
	d, ok := status.Interval()
	if !ok {
		d, _ = StatusH4.Interval()
	}
	return now.Add(d)
}

// MasteryDue returns the first review time of a freshly learned word.
// Unlike DueAt it is rounded to the nearest minute.
func MasteryDue(now time.Time) time.Time {
	return DueAt(StatusH4, now).Round(time.Minute)
}

// ResetStatus returns the status applied after a failed review.
func ResetStatus() Status {
	return StatusH4
}

// ResetDue returns the due time applied after a failed review.
func ResetDue(now time.Time) time.Time {
	return DueAt(StatusH4, now)
}
