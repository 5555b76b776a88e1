package entities

import (
	"encoding"
	"fmt"
)

// Phase is the state machine position of a drill session, or the outcome
// of the last transition.
type Phase int

const (
	PhasePresentation Phase = iota + 1 // pair revealed, any input continues
	PhaseTesting                       // waiting for the translation
	PhaseCorrection                    // wrong answer, the target must be retyped
	PhaseCorrect                       // answer accepted
	PhaseIncorrect                     // review answer rejected
	PhaseCompleted                     // working set exhausted
	PhaseAllLearned                    // no unlearned words, no session started
	PhaseNothingDue                    // no words due, no session started
)

var (
	phaseNames = [...]string{
		PhasePresentation: "presentation",
		PhaseTesting:      "testing",
		PhaseCorrection:   "correction",
		PhaseCorrect:      "correct",
		PhaseIncorrect:    "incorrect",
		PhaseCompleted:    "completed",
		PhaseAllLearned:   "all_learned",
		PhaseNothingDue:   "nothing_due",
	}
	phaseByName = map[string]Phase{
		"presentation": PhasePresentation,
		"testing":      PhaseTesting,
		"correction":   PhaseCorrection,
		"correct":      PhaseCorrect,
		"incorrect":    PhaseIncorrect,
		"completed":    PhaseCompleted,
		"all_learned":  PhaseAllLearned,
		"nothing_due":  PhaseNothingDue,
	}
)

var (
	_ fmt.Stringer             = Phase(0)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
)

func (p Phase) isValid() bool {
	return p >= PhasePresentation && p <= PhaseNothingDue
}

// String returns the phase tag. For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.isValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Terminal reports whether no further answers are accepted in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAllLearned || p == PhaseNothingDue
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.isValid() {
		return nil, fmt.Errorf("invalid phase: %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("invalid phase: %q", text)
	}
	*p = v
	return nil
}
