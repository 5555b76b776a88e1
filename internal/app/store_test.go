package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/config"
	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

func TestOpenStore_FileDrivers(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		storage config.Storage
	}{
		{"csv", config.Storage{Driver: config.DriverCSV, CSVDir: filepath.Join(dir, "users")}},
		{"sqlite", config.Storage{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "words.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, closeStore, err := OpenStore(ctx, &config.Config{Storage: tt.storage}, zap.NewNop())
			if err != nil {
				t.Fatalf("OpenStore: %v", err)
			}
			defer closeStore()

			if err := store.Save(ctx, "amina", []entities.Word{{English: "dog", Swahili: "mbwa"}}); err != nil {
				t.Fatalf("Save: %v", err)
			}

			learners, err := store.Learners(ctx)
			if err != nil {
				t.Fatalf("Learners: %v", err)
			}
			if len(learners) != 1 || learners[0] != "amina" {
				t.Fatalf("unexpected learners %v", learners)
			}
		})
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), &config.Config{Storage: config.Storage{Driver: "mongo"}}, zap.NewNop())
	if !errors.Is(err, config.ErrUnknownStorageDriver) {
		t.Fatalf("expected ErrUnknownStorageDriver, got %v", err)
	}
}
