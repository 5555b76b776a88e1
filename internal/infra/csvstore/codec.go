package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidDue    = errors.New("invalid due timestamp")
)

var header = []string{"english", "swahili", "status", "due"}

// Layouts accepted for the due column. Timestamps without an offset are
// read in local time.
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Decode reads a word list with an english,swahili,status,due header.
// Columns are matched by name; extra columns are ignored.
func Decode(r io.Reader) ([]entities.Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []entities.Word{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(head))
	for i, name := range head {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range header[:2] {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	words := make([]entities.Word, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		w := entities.Word{
			English: field(record, "english"),
			Swahili: field(record, "swahili"),
			Status:  entities.Status(field(record, "status")),
		}
		if raw := field(record, "due"); raw != "" {
			due, err := parseDue(raw)
			if err != nil {
				return nil, fmt.Errorf("word %q: %w", w.Swahili, err)
			}
			w.Due = &due
		}
		words = append(words, w)
	}

	return words, nil
}

// Encode writes the word list with a header row.
func Encode(w io.Writer, words []entities.Word) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, word := range words {
		due := ""
		if word.Due != nil {
			due = word.Due.Format(time.RFC3339Nano)
		}
		if err := writer.Write([]string{word.English, word.Swahili, string(word.Status), due}); err != nil {
			return fmt.Errorf("write word %q: %w", word.Swahili, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func parseDue(raw string) (time.Time, error) {
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDue, raw)
}
