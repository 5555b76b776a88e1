package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
	"github.com/aliskhannn/simguistic/internal/service"
)

const masteryStreak = 3

// renderResult turns an engine result into two HTML texts: feedback on
// the answer just given and the prompt for what comes next. Either may be
// empty.
func renderResult(res *entities.Result) (feedback, prompt string) {
	return renderFeedback(res), renderPrompt(res)
}

func renderFeedback(res *entities.Result) string {
	var lines []string

	switch res.Phase {
	case entities.PhaseCorrect:
		lines = append(lines, "✅ "+esc(res.Message))
		if res.Progress > 0 && res.Progress < masteryStreak {
			lines = append(lines, fmt.Sprintf("Streak: %d/%d", res.Progress, masteryStreak))
		}
	case entities.PhaseIncorrect:
		lines = append(lines, "❌ "+esc(res.Message))
		if res.TargetReveal != "" {
			lines = append(lines, "Correct answer: "+bold(res.TargetReveal))
		}
	case entities.PhaseCorrection:
		lines = append(lines, "❌ "+esc(res.Message))
	case entities.PhaseAllLearned, entities.PhaseNothingDue:
		lines = append(lines, "ℹ️ "+esc(res.Message))
	default:
		if res.Message != "" {
			lines = append(lines, esc(res.Message))
		}
	}

	return strings.Join(lines, "\n")
}

func renderPrompt(res *entities.Result) string {
	var text string

	switch res.NextPhase {
	case entities.PhasePresentation:
		text = fmt.Sprintf("🆕 New word: %s\nSwahili: %s\n\n%s",
			bold(res.EnglishPrompt), bold(res.TargetReveal), msgTapToContinue)
	case entities.PhaseTesting:
		text = "✍️ Translate into Swahili: " + bold(res.EnglishPrompt)
	case entities.PhaseCorrection:
		text = fmt.Sprintf("%s → %s\n%s",
			bold(res.EnglishPrompt), bold(res.TargetReveal), msgTypeToContinue)
	case entities.PhaseCompleted:
		return msgSessionComplete
	default:
		return ""
	}

	if res.Remaining > 0 {
		text += fmt.Sprintf("\n\n<i>Words left: %d</i>", res.Remaining)
	}
	return text
}

// renderStats renders the learner's word counts.
func renderStats(s *service.ProgressSummary) string {
	percent := 0.0
	if s.Total > 0 {
		percent = float64(s.Learned) / float64(s.Total) * 100
	}

	return fmt.Sprintf(
		"📊 %s\n\n%s\n\n✅ Learned: %d / %d (%.1f%%)\n⏳ Unlearned: %d\n🔄 Due for review: %d",
		bold(s.LearnerID),
		buildProgressBar(s.Learned, s.Total, 20),
		s.Learned, s.Total, percent,
		s.Unlearned,
		s.Due,
	)
}

// sessionEnded reports whether the result leaves no session behind.
func sessionEnded(res *entities.Result) bool {
	return res.NextPhase.Terminal()
}
