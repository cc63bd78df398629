package store

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Open builds the driver named by cfg.Store.Driver and wraps it into a Store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Store, error) {
	driver, err := openDriver(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(driver, logger)
	if err != nil {
		driver.Close()

		return nil, err
	}

	return store, nil
}

func openDriver(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Driver, error) {
	switch cfg.Store.Driver {
	case "", constants.StoreDriverMemory:
		return OpenMemoryDriver(), nil

	case constants.StoreDriverFile:
		if cfg.Store.Path == "" {
			return nil, errors.New("store path is required for the file driver")
		}

		return OpenFileDriver(cfg.Store.Path, logger)

	case constants.StoreDriverRedis:
		if cfg.Store.Redis.Addr == "" {
			return nil, errors.New("redis addr is required for the redis driver")
		}

		return OpenRedisDriver(ctx, cfg.Store.Redis, logger)

	case constants.StoreDriverPostgres:
		db, closeFn, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		kv, err := postgres.NewKVStore(ctx, db, closeFn)
		if err != nil {
			closeFn()

			return nil, err
		}

		return kv, nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// Params holds dependencies for the Store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured store and closes it on shutdown.
func New(params Params) (repository.Store, error) {
	store, err := Open(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open profile store")
	}

	params.Logger.Info("Profile store opened",
		slog.String("driver", params.Config.Store.Driver),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing profile store")

			return store.Close()
		},
	})

	return store, nil
}

// Module provides the profile store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
