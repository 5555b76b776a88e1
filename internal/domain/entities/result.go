package entities

// Result is returned by every engine call and describes what the client
// should show next.
type Result struct {
	EnglishPrompt  string `json:"english_prompt,omitempty"` // source text of the word to translate
	TargetReveal   string `json:"target_reveal,omitempty"`  // target text, set on presentation and mismatch
	Phase          Phase  `json:"phase"`                    // outcome of this call
	NextPhase      Phase  `json:"next_phase"`               // phase the session waits in afterwards
	Message        string `json:"message"`                  // feedback for the learner
	SuggestedDelay bool   `json:"suggested_delay"`          // pause before showing the next prompt
	Progress       int    `json:"progress"`                 // consecutive correct answers, learning only
	Remaining      int    `json:"remaining"`                // words left in the working set
}
