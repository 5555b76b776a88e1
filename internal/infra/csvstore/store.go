package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

const fileSuffix = "_wordlist.csv"

var ErrInvalidLearner = errors.New("invalid learner name")

// Store keeps one {learner}_wordlist.csv file per learner in a directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Load reads the learner's word list. A missing file yields an empty list.
func (s *Store) Load(ctx context.Context, learnerID string) ([]entities.Word, error) {
	path, err := s.path(learnerID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	for _, w := range UnknownStatuses(words) {
		s.logger.Warn("unknown word status, scheduled like h4",
			zap.String("learner_id", learnerID),
			zap.String("word", w.Swahili),
			zap.String("status", string(w.Status)),
		)
	}

	return words, nil
}

// Save replaces the learner's file. The list is written to a temporary
// file first and renamed into place.
func (s *Store) Save(ctx context.Context, learnerID string, words []entities.Word) error {
	path, err := s.path(learnerID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+learnerID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, words); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", learnerID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Learners lists learners that have a word list file.
func (s *Store) Learners(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var learners []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		if id := strings.TrimSuffix(name, fileSuffix); id != "" {
			learners = append(learners, id)
		}
	}

	return learners, nil
}

func (s *Store) path(learnerID string) (string, error) {
	if learnerID == "" || learnerID == "." || learnerID == ".." ||
		strings.ContainsAny(learnerID, `/\`) || strings.HasPrefix(learnerID, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidLearner, learnerID)
	}
	return filepath.Join(s.dir, learnerID+fileSuffix), nil
}

// ReadFile decodes the word list stored at path. A missing file yields an
// empty list.
func ReadFile(path string) ([]entities.Word, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entities.Word{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return words, nil
}

// UnknownStatuses returns the words whose status is not on the ladder.
func UnknownStatuses(words []entities.Word) []entities.Word {
	var out []entities.Word
	for _, w := range words {
		if !w.Status.Valid() {
			out = append(out, w)
		}
	}
	return out
}
