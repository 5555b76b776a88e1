package csvstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

func TestStore_SaveLoad(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	due := time.Date(2026, 3, 1, 16, 1, 0, 0, time.UTC)
	words := []entities.Word{
		{English: "dog", Swahili: "mbwa", Status: entities.StatusH4, Due: &due},
		{English: "cat, small", Swahili: "paka"},
	}

	if err := store.Save(ctx, "amina", words); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "amina")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %d", len(got))
	}
	if got[0].Due == nil || !got[0].Due.Equal(due) {
		t.Errorf("expected due %v, got %v", due, got[0].Due)
	}
	if got[1].English != "cat, small" || got[1].Due != nil {
		t.Errorf("unexpected second word %+v", got[1])
	}

	entries, err := os.ReadDir(store.dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "amina_wordlist.csv" {
		t.Errorf("expected only the word list file, got %v", entries)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := store.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestStore_Learners(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, name := range []string{"amina_wordlist.csv", "baraka_wordlist.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("english,swahili,status,due\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	learners, err := store.Learners(context.Background())
	if err != nil {
		t.Fatalf("Learners: %v", err)
	}
	slices.Sort(learners)
	if !slices.Equal(learners, []string{"amina", "baraka"}) {
		t.Fatalf("unexpected learners %v", learners)
	}
}

func TestStore_RejectsPathLikeLearner(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, id := range []string{"", "..", "../x", `a\b`, ".hidden"} {
		if _, err := store.Load(context.Background(), id); !errors.Is(err, ErrInvalidLearner) {
			t.Errorf("Load(%q): expected ErrInvalidLearner, got %v", id, err)
		}
	}
}

func TestDecode_OffsetlessTimestamps(t *testing.T) {
	input := "english,swahili,status,due\n" +
		"dog,mbwa,h4,2026-03-01T16:01:00\n" +
		"water,maji,d6,2026-03-01T16:01:00.250000\n" +
		"cat,paka,,\n"

	words, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}

	want := time.Date(2026, 3, 1, 16, 1, 0, 0, time.Local)
	if words[0].Due == nil || !words[0].Due.Equal(want) {
		t.Errorf("expected local due %v, got %v", want, words[0].Due)
	}
	if words[1].Due == nil || words[1].Due.Nanosecond() != 250_000_000 {
		t.Errorf("expected fractional seconds kept, got %v", words[1].Due)
	}
	if words[2].Status != entities.StatusUnlearned || words[2].Due != nil {
		t.Errorf("expected unlearned word, got %+v", words[2])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing swahili column", "english,status\ndog,h4\n", ErrMissingColumn},
		{"bad due", "english,swahili,status,due\ndog,mbwa,h4,tomorrow\n", ErrInvalidDue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	words, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(words) != 0 {
		t.Fatalf("expected no words, got %+v", words)
	}
}

func TestStore_LoadWarnsOnUnknownStatus(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zapcore.WarnLevel)
	store, err := New(dir, zap.New(core))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	content := "english,swahili,status,due\n" +
		"dog,mbwa,h4,2026-03-01T16:01:00Z\n" +
		"cat,paka,d7,2026-03-01T16:01:00Z\n"
	if err := os.WriteFile(filepath.Join(dir, "amina_wordlist.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	words, err := store.Load(context.Background(), "amina")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(words) != 2 || words[1].Status != "d7" {
		t.Fatalf("expected unknown status kept as is, got %+v", words)
	}

	entries := logs.FilterField(zap.String("word", "paka")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning for paka, got %d (all: %d)", len(entries), logs.Len())
	}
	if logs.Len() != 1 {
		t.Errorf("expected no warning for valid statuses, got %d", logs.Len())
	}
}
