package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

func TestReviewService_LapseThenRecall(t *testing.T) {
	ctx := context.Background()
	repo := newMemWordRepo()
	repo.words["amina"] = []entities.Word{
		{English: "dog", Swahili: "mbwa", Status: entities.StatusD6, Due: ptr(testNow)},
	}
	svc, sessions := newReview(repo, fixedRandom{})

	res, err := svc.StartReview(ctx, "amina")
	if err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	if res.Phase != entities.PhaseTesting || res.EnglishPrompt != "dog" || res.TargetReveal != "" {
		t.Fatalf("expected testing dog without reveal, got %+v", res)
	}

	res, err = svc.SubmitAnswer(ctx, "amina", "paka")
	if err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	if res.Phase != entities.PhaseIncorrect || res.TargetReveal != "mbwa" {
		t.Fatalf("expected incorrect revealing mbwa, got %+v", res)
	}
	if res.NextPhase != entities.PhaseTesting || res.EnglishPrompt != "dog" {
		t.Fatalf("expected dog to be retried, got %s %q", res.NextPhase, res.EnglishPrompt)
	}

	w := repo.word("amina", "mbwa")
	if w.Status != entities.StatusH4 || !w.Due.Equal(testNow.Add(4*time.Hour)) {
		t.Fatalf("expected reset to h4 due now+4h, got %q %v", w.Status, w.Due)
	}
	if repo.saves != 1 {
		t.Fatalf("expected reset to be written immediately, got %d writes", repo.saves)
	}

	res, err = svc.SubmitAnswer(ctx, "amina", "Mbwa!")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Phase != entities.PhaseCorrect || res.NextPhase != entities.PhaseCompleted {
		t.Fatalf("expected correct and completed, got %s/%s", res.Phase, res.NextPhase)
	}

	w = repo.word("amina", "mbwa")
	if w.Status != entities.StatusH24 {
		t.Fatalf("expected h4 to advance to h24, got %q", w.Status)
	}
	if !w.Due.Equal(testNow.Add(24 * time.Hour)) {
		t.Fatalf("expected full precision due now+24h, got %v", w.Due)
	}
	if sessions.Len() != 0 {
		t.Fatal("expected session to be destroyed")
	}
}

func TestReviewService_LapseResetsAnyRung(t *testing.T) {
	ctx := context.Background()

	for _, status := range entities.Ladder {
		t.Run(string(status), func(t *testing.T) {
			repo := newMemWordRepo()
			repo.words["amina"] = []entities.Word{
				{English: "dog", Swahili: "mbwa", Status: status, Due: ptr(testNow.Add(-time.Hour))},
			}
			svc, _ := newReview(repo, fixedRandom{})

			if _, err := svc.StartReview(ctx, "amina"); err != nil {
				t.Fatalf("StartReview: %v", err)
			}
			if _, err := svc.SubmitAnswer(ctx, "amina", "wrong"); err != nil {
				t.Fatalf("SubmitAnswer: %v", err)
			}

			w := repo.word("amina", "mbwa")
			if w.Status != entities.StatusH4 || !w.Due.Equal(testNow.Add(4*time.Hour)) {
				t.Fatalf("expected h4/+4h, got %q %v", w.Status, w.Due)
			}
		})
	}
}

func TestReviewService_RecallAdvancesLadder(t *testing.T) {
	ctx := context.Background()

	for _, status := range entities.Ladder {
		t.Run(string(status), func(t *testing.T) {
			repo := newMemWordRepo()
			repo.words["amina"] = []entities.Word{{English: "dog", Swahili: "mbwa", Status: status}}
			svc, _ := newReview(repo, fixedRandom{})

			if _, err := svc.StartReview(ctx, "amina"); err != nil {
				t.Fatalf("StartReview: %v", err)
			}
			if _, err := svc.SubmitAnswer(ctx, "amina", "mbwa"); err != nil {
				t.Fatalf("SubmitAnswer: %v", err)
			}

			want := entities.NextStatus(status)
			w := repo.word("amina", "mbwa")
			if w.Status != want {
				t.Fatalf("expected %q, got %q", want, w.Status)
			}
			if !w.Due.Equal(entities.DueAt(want, testNow)) {
				t.Fatalf("expected due %v, got %v", entities.DueAt(want, testNow), w.Due)
			}
		})
	}
}

func TestReviewService_SelectsDueWords(t *testing.T) {
	ctx := context.Background()
	repo := newMemWordRepo()
	repo.words["amina"] = []entities.Word{
		{English: "dog", Swahili: "mbwa", Status: entities.StatusH4, Due: ptr(testNow.Add(-time.Minute))},
		{English: "cat", Swahili: "paka"},
		{English: "water", Swahili: "maji", Status: entities.StatusD12, Due: ptr(testNow.Add(time.Hour))},
		{English: "food", Swahili: "chakula", Status: entities.StatusD6},
		{English: "hello", Swahili: "jambo", Status: entities.StatusH24, Due: ptr(testNow)},
	}
	answers := map[string]string{"dog": "mbwa", "food": "chakula", "hello": "jambo"}
	svc, _ := newReview(repo, rand.New(rand.NewPCG(1, 2)))

	res, err := svc.StartReview(ctx, "amina")
	if err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	if res.Remaining != 3 {
		t.Fatalf("expected 3 due words, got %d", res.Remaining)
	}

	seen := map[string]int{}
	for steps := 0; res.NextPhase != entities.PhaseCompleted; steps++ {
		if steps > 10 {
			t.Fatal("session did not complete")
		}
		answer, ok := answers[res.EnglishPrompt]
		if !ok {
			t.Fatalf("word %q is not due", res.EnglishPrompt)
		}
		seen[res.EnglishPrompt]++

		res, err = svc.SubmitAnswer(ctx, "amina", answer)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	for en := range answers {
		if seen[en] != 1 {
			t.Errorf("expected %q reviewed once, got %d", en, seen[en])
		}
	}
	if w := repo.word("amina", "maji"); w.Status != entities.StatusD12 {
		t.Errorf("expected not-yet-due word untouched, got %q", w.Status)
	}
	if w := repo.word("amina", "paka"); w.IsLearned() {
		t.Errorf("expected unlearned word untouched, got %q", w.Status)
	}
}

func TestReviewService_LapsedWordRequeued(t *testing.T) {
	ctx := context.Background()
	repo := newMemWordRepo()
	repo.words["amina"] = []entities.Word{
		{English: "dog", Swahili: "mbwa", Status: entities.StatusD6},
		{English: "cat", Swahili: "paka", Status: entities.StatusD6},
		{English: "water", Swahili: "maji", Status: entities.StatusD6},
	}
	svc, sessions := newReview(repo, fixedRandom{pos: 1})

	if _, err := svc.StartReview(ctx, "amina"); err != nil {
		t.Fatalf("StartReview: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, "amina", "wrong")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.EnglishPrompt != "cat" || res.Remaining != 3 {
		t.Fatalf("expected cat next with 3 words left, got %q/%d", res.EnglishPrompt, res.Remaining)
	}

	sess, _ := sessions.Get("amina")
	if len(sess.Queue) != 2 || sess.Queue[0].Swahili != "mbwa" || sess.Queue[1].Swahili != "maji" {
		t.Fatalf("expected mbwa requeued before maji, got %+v", sess.Queue)
	}
	if sess.Queue[0].Status != entities.StatusH4 {
		t.Fatalf("expected requeued copy to carry the reset status, got %q", sess.Queue[0].Status)
	}
}

func TestReviewService_NothingDue(t *testing.T) {
	ctx := context.Background()
	repo := newMemWordRepo()
	repo.words["amina"] = []entities.Word{
		{English: "cat", Swahili: "paka"},
		{English: "dog", Swahili: "mbwa", Status: entities.StatusD6, Due: ptr(testNow.Add(time.Second))},
	}
	svc, sessions := newReview(repo, fixedRandom{})

	res, err := svc.StartReview(ctx, "amina")
	if err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	if res.Phase != entities.PhaseNothingDue || res.Message != msgNothingDue {
		t.Fatalf("expected nothing due, got %+v", res)
	}
	if sessions.Len() != 0 || repo.saves != 0 {
		t.Fatal("expected no session and no writes")
	}
	if _, err := svc.SubmitAnswer(ctx, "amina", "mbwa"); !errors.Is(err, ErrNoActiveWord) {
		t.Fatalf("expected ErrNoActiveWord, got %v", err)
	}
}

func TestReviewService_FailedWriteKeepsSession(t *testing.T) {
	ctx := context.Background()
	repo := newMemWordRepo()
	repo.words["amina"] = []entities.Word{{English: "dog", Swahili: "mbwa", Status: entities.StatusD6}}
	svc, sessions := newReview(repo, fixedRandom{})

	if _, err := svc.StartReview(ctx, "amina"); err != nil {
		t.Fatalf("StartReview: %v", err)
	}

	repo.failSave = true
	for _, answer := range []string{"mbwa", "wrong"} {
		if _, err := svc.SubmitAnswer(ctx, "amina", answer); !errors.Is(err, ErrPersistence) {
			t.Fatalf("answer %q: expected ErrPersistence, got %v", answer, err)
		}
	}

	sess, ok := sessions.Get("amina")
	if !ok || sess.Cursor == nil || sess.Cursor.Status != entities.StatusD6 || len(sess.WorkingSet) != 1 {
		t.Fatalf("expected session unchanged, got %+v", sess)
	}
	if len(sess.Queue) != 0 {
		t.Fatalf("expected nothing requeued, got %d", len(sess.Queue))
	}
}

func TestReviewService_WordRemovedFromStore(t *testing.T) {
	ctx := context.Background()
	repo := newMemWordRepo()
	repo.words["amina"] = []entities.Word{{English: "dog", Swahili: "mbwa", Status: entities.StatusD6}}
	svc, _ := newReview(repo, fixedRandom{})

	if _, err := svc.StartReview(ctx, "amina"); err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	repo.words["amina"] = nil

	_, err := svc.SubmitAnswer(ctx, "amina", "mbwa")
	if !errors.Is(err, ErrWordNotFound) || !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

func TestReviewService_NoUser(t *testing.T) {
	svc, _ := newReview(newMemWordRepo(), fixedRandom{})

	if _, err := svc.StartReview(context.Background(), ""); !errors.Is(err, ErrNoUserSelected) {
		t.Errorf("expected ErrNoUserSelected, got %v", err)
	}
	if _, err := svc.SubmitAnswer(context.Background(), "", "x"); !errors.Is(err, ErrNoUserSelected) {
		t.Errorf("expected ErrNoUserSelected, got %v", err)
	}
}
