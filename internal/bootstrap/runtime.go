// Package bootstrap selects the data backend for the configured mode and
// connects the shared infrastructure the server needs.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"matchboard/internal/backend"
	"matchboard/internal/backend/rest"
	"matchboard/internal/cache"
	"matchboard/internal/config"
	"matchboard/internal/database"
	"matchboard/internal/fixtures"
	"matchboard/internal/middleware"
	"matchboard/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// Rand draws the placeholder scores of the built-in dataset. Nil uses
	// the global source.
	Rand *rand.Rand
	// Now stamps the built-in dataset. Nil uses time.Now.
	Now func() time.Time
	// SkipRedis leaves Redis unset even when REDIS_URL is configured.
	SkipRedis bool
}

// Runtime holds what InitRuntime connected.
type Runtime struct {
	Backend *backend.Backend
	// DB is set in postgres mode only.
	DB *gorm.DB
	// Fixtures is set in fixture mode only.
	Fixtures *fixtures.Store
	// Redis is nil when Redis is disabled or unreachable.
	Redis *redis.Client
}

// SelectBackend builds the backend for cfg.EffectiveBackendMode(). Fixture
// mode never opens a network connection.
func SelectBackend(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{}
	mode := cfg.EffectiveBackendMode()

	switch mode {
	case config.BackendModeFixtures:
		ds, err := loadDataset(cfg, opts)
		if err != nil {
			return nil, err
		}
		rt.Fixtures = fixtures.NewStore(ds)
		rt.Backend = fixtures.NewBackend(rt.Fixtures)
		middleware.Logger.Warn("Backend not configured, serving mock data",
			"mode", mode, "fixtures_file", cfg.FixturesFile)

	case config.BackendModeREST:
		client, err := rest.NewClient(cfg.BackendURL, cfg.BackendKey,
			time.Duration(cfg.BackendTimeoutSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("backend client: %w", err)
		}
		for _, warning := range config.InspectBackendKey(cfg.BackendKey) {
			middleware.Logger.Warn("Backend key warning", "warning", warning)
		}
		rt.Backend = rest.NewBackend(client)

	case config.BackendModePostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		rt.DB = db
		rt.Backend = repository.NewBackend(db)

	default:
		return nil, fmt.Errorf("unknown backend mode %q", mode)
	}

	rt.Backend = backend.Instrument(rt.Backend)
	middleware.Logger.Info("Data backend selected", "mode", mode)
	return rt, nil
}

func loadDataset(cfg *config.Config, opts Options) (fixtures.Dataset, error) {
	if cfg.FixturesFile != "" {
		ds, err := fixtures.LoadFile(cfg.FixturesFile)
		if err != nil {
			return fixtures.Dataset{}, err
		}
		return ds, nil
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return fixtures.Default(opts.Rand, now()), nil
}

// InitRuntime selects the backend and connects Redis. Redis is optional:
// an unreachable server leaves Runtime.Redis nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	rt, err := SelectBackend(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	if !opts.SkipRedis {
		rt.Redis = cache.Connect(ctx, cfg.RedisURL)
	}
	return rt, nil
}

// Close releases the database and Redis connections.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.DB != nil {
		errs = append(errs, database.Close(rt.DB))
	}
	if rt.Redis != nil {
		errs = append(errs, rt.Redis.Close())
	}
	return errors.Join(errs...)
}
