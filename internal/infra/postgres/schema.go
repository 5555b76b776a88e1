package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	learner_id TEXT        NOT NULL,
	position   INTEGER     NOT NULL,
	english    TEXT        NOT NULL,
	swahili    TEXT        NOT NULL,
	status     TEXT        NOT NULL DEFAULT '',
	due_at     TIMESTAMPTZ,
	PRIMARY KEY (learner_id, position)
);

CREATE INDEX IF NOT EXISTS words_due_idx ON words (learner_id, due_at) WHERE status <> '';
`

// EnsureSchema creates the tables the word repository needs.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
