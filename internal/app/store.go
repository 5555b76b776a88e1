package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/simguistic/internal/config"
	"github.com/aliskhannn/simguistic/internal/infra/csvstore"
	"github.com/aliskhannn/simguistic/internal/infra/postgres"
	"github.com/aliskhannn/simguistic/internal/infra/postgres/repository"
	"github.com/aliskhannn/simguistic/internal/infra/sqlite"
	"github.com/aliskhannn/simguistic/internal/service"
)

// Store is a word store that can also enumerate its learners.
type Store interface {
	service.WordRepository
	service.LearnerRepository
}

// OpenStore opens the word store selected by cfg.Storage.Driver. The
// returned close function releases the underlying resources.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}

		logger.Info("using postgres word store")
		return repository.NewWordRepository(pool, postgres.NewTransactor(pool)), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}

		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		logger.Info("using sqlite word store", zap.String("path", cfg.Storage.SQLitePath))
		return sqlite.NewWordRepository(db), func() { _ = db.Close() }, nil

	case config.DriverCSV:
		store, err := csvstore.New(cfg.Storage.CSVDir, logger)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using csv word store", zap.String("dir", cfg.Storage.CSVDir))
		return store, func() {}, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
}
