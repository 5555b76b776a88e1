// Command wordimport loads a learner's word list from a CSV file with an
// english,swahili,status,due header into the configured word store.
//
//	wordimport -learner amina -file amina_wordlist.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/app"
	"github.com/aliskhannn/simguistic/internal/config"
	"github.com/aliskhannn/simguistic/internal/infra/csvstore"
	"github.com/aliskhannn/simguistic/internal/logger"
)

func main() {
	learner := flag.String("learner", "", "learner to import the words for")
	file := flag.String("file", "", "CSV file to import")
	flag.Parse()

	if *learner == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg, *learner, *file); err != nil {
		lg.Fatal("import failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger, learner, file string) error {
	words, err := csvstore.ReadFile(file)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no words in %s", file)
	}

	for _, w := range csvstore.UnknownStatuses(words) {
		lg.Warn("unknown word status, scheduled like h4",
			zap.String("word", w.Swahili),
			zap.String("status", string(w.Status)),
		)
	}

	store, closeStore, err := app.OpenStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Save(ctx, learner, words); err != nil {
		return fmt.Errorf("save words: %w", err)
	}

	lg.Info("word list imported",
		zap.String("learner_id", learner),
		zap.String("file", file),
		zap.Int("words", len(words)),
	)
	return nil
}
