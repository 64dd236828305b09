package models

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/moviemate/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// OpenRepository opens the storage selected by cfg and creates the schema.
// Opening is retried with exponential backoff for up to cfg.DBOpenTimeout,
// which covers a Postgres server still starting or a bolt file held by a
// previous process. The returned cleanup function closes the storage.
func OpenRepository(cfg *config.Config, logger zerolog.Logger) (Repository, func(), error) {
	ctx := context.Background()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = cfg.DBOpenTimeout

	var repo Repository
	operation := func() error {
		r, err := openDriver(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return fmt.Errorf("storage not reachable: %w", err)
		}
		if err := r.Migrate(ctx); err != nil {
			r.Close()
			return backoff.Permanent(err)
		}
		repo = r
		return nil
	}
	notify := func(err error, next time.Duration) {
		logger.Warn().Err(err).Dur("retry_in", next).Msg("Failed to open storage, retrying")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageDriver, err)
	}

	logger.Info().Str("driver", cfg.StorageDriver).Msg("Storage opened")

	cleanup := func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
	return repo, cleanup, nil
}

func openDriver(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Repository, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DatabaseFile, logger)
	case config.DriverPostgres:
		return OpenPostgres(cfg.DatabaseURL, logger)
	case config.DriverBolt:
		return OpenBolt(cfg.BoltFile)
	default:
		return nil, backoff.Permanent(fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver))
	}
}
