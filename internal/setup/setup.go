package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"tessera/internal/database"
	"tessera/internal/logging"
	"tessera/internal/palette"
	"tessera/internal/srvenv"
)

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type PaletteConfigProvider interface {
	PaletteConfig() *palette.Config
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var db *database.DB
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
		logger.Info("Configuring db")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		db = dbFromEnv
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if paletteConfigProvider, ok := config.(PaletteConfigProvider); ok {
		logger.Info("Configuring palette")
		provideFn, err := ProvidePaletteFor(paletteConfigProvider.PaletteConfig(), db)
		if err != nil {
			return nil, fmt.Errorf("unable create palette provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPalette(provideFn))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvidePaletteFor(cfg *palette.Config, db *database.DB) (palette.ProvideFn, error) {
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("dont process palette env: %w", err)
	}
	return func(shutdownCh chan<- error) (palette.Manager, error) {
		return palette.New(
			db,
			shutdownCh,
			palette.WithDir(cfg.Dir),
			palette.WithManifest(cfg.Manifest),
			palette.WithMaxConcurrentLoads(cfg.MaxConcurrentLoads),
			palette.WithWatch(cfg.Watch),
			palette.WithRebuildDebounce(cfg.RebuildDebounce),
			palette.WithCacheSize(cfg.CacheSize),
		)
	}, nil
}
