package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
	"github.com/aliskhannn/simguistic/internal/infra/postgres"
)

var wordColumns = []string{"learner_id", "position", "english", "swahili", "status", "due_at"}

// WordRepository provides access to learners' word lists in the database.
type WordRepository struct {
	db         postgres.DBTX
	transactor *postgres.Transactor
}

// NewWordRepository creates a new WordRepository. Saves run inside
// transactions opened by transactor.
func NewWordRepository(db postgres.DBTX, transactor *postgres.Transactor) *WordRepository {
	return &WordRepository{db: db, transactor: transactor}
}

// Load retrieves the learner's words in list order.
func (r *WordRepository) Load(ctx context.Context, learnerID string) ([]entities.Word, error) {
	query := `
		SELECT english, swahili, status, due_at
		FROM words
		WHERE learner_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	words := make([]entities.Word, 0)
	for rows.Next() {
		var (
			w      entities.Word
			status string
			due    *time.Time
		)
		if err := rows.Scan(&w.English, &w.Swahili, &status, &due); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		w.Status = entities.Status(status)
		w.Due = due
		words = append(words, w)
	}

	return words, rows.Err()
}

// Save replaces the learner's word list within a transaction. The
// transaction holds an advisory lock on the learner so concurrent
// replaces from other processes are serialized.
func (r *WordRepository) Save(ctx context.Context, learnerID string, words []entities.Word) error {
	return r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, learnerID); err != nil {
			return fmt.Errorf("lock learner: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM words WHERE learner_id = $1`, learnerID); err != nil {
			return fmt.Errorf("delete words: %w", err)
		}

		rows := make([][]any, 0, len(words))
		for i, w := range words {
			rows = append(rows, []any{learnerID, i, w.English, w.Swahili, string(w.Status), w.Due})
		}

		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"words"}, wordColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy words: %w", err)
		}

		return nil
	})
}

// Learners returns every learner that owns at least one word.
func (r *WordRepository) Learners(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT learner_id FROM words ORDER BY learner_id`)
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
