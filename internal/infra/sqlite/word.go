package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

// WordRepository stores word lists in SQLite.
type WordRepository struct {
	db *DB
}

func NewWordRepository(db *DB) *WordRepository {
	return &WordRepository{db: db}
}

// Load retrieves the learner's words in list order.
func (r *WordRepository) Load(ctx context.Context, learnerID string) ([]entities.Word, error) {
	rows, err := r.db.SqlDB.QueryContext(ctx, `
		SELECT english, swahili, status, due_at
		FROM words
		WHERE learner_id = ?
		ORDER BY position
	`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	words := make([]entities.Word, 0)
	for rows.Next() {
		var (
			w      entities.Word
			status string
			due    sql.NullString
		)
		if err := rows.Scan(&w.English, &w.Swahili, &status, &due); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		w.Status = entities.Status(status)
		if due.Valid {
			t, err := time.Parse(time.RFC3339Nano, due.String)
			if err != nil {
				return nil, fmt.Errorf("parse due of %q: %w", w.Swahili, err)
			}
			w.Due = &t
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// Save replaces the learner's word list in a single transaction.
func (r *WordRepository) Save(ctx context.Context, learnerID string, words []entities.Word) error {
	tx, err := r.db.SqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE learner_id = ?`, learnerID); err != nil {
		return fmt.Errorf("delete words: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (learner_id, position, english, swahili, status, due_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, w := range words {
		var due sql.NullString
		if w.Due != nil {
			due = sql.NullString{String: w.Due.UTC().Format(time.RFC3339Nano), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, learnerID, i, w.English, w.Swahili, string(w.Status), due); err != nil {
			return fmt.Errorf("insert word %q: %w", w.Swahili, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Learners returns every learner that owns at least one word.
func (r *WordRepository) Learners(ctx context.Context) ([]string, error) {
	rows, err := r.db.SqlDB.QueryContext(ctx, `SELECT DISTINCT learner_id FROM words ORDER BY learner_id`)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	defer rows.Close()

	var learners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		learners = append(learners, id)
	}

	return learners, rows.Err()
}
