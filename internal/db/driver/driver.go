// Package driver opens a db.Store by driver name.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/db/memory"
	"github.com/kailas-cloud/iconhub/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/iconhub/internal/db/redis"
)

// Driver names.
const (
	Valkey   = "valkey"
	Redis    = "redis"
	Postgres = "postgres"
	Memory   = "memory"
)

// Config selects and parameterizes a driver.
type Config struct {
	Driver           string
	Addrs            []string
	Password         string
	DSN              string
	KeyPrefix        string
	ReadinessTimeout time.Duration
}

// Open creates a store, waits until it answers, applies postgres migrations
// and ensures the given collections. The store is instrumented with
// operation metrics.
func Open(ctx context.Context, cfg Config, specs ...*db.CollectionSpec) (db.Store, error) {
	store, err := create(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.ReadinessTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}

	if pg, ok := store.(*postgres.Store); ok {
		if err := pg.Migrate(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	inst := db.NewInstrumented(store, cfg.Driver)
	for _, spec := range specs {
		if err := inst.EnsureCollection(ctx, spec); err != nil {
			inst.Close()
			return nil, fmt.Errorf("ensure %s: %w", spec.Name, err)
		}
	}
	return inst, nil
}

// Lazy returns a store that connects on first use. Every successful
// connection has the given collections in place.
func Lazy(cfg Config, specs ...*db.CollectionSpec) *db.Lazy {
	return db.NewLazy(func(ctx context.Context) (db.Store, error) {
		return Open(ctx, cfg, specs...)
	})
}

func create(cfg Config) (db.Store, error) {
	switch cfg.Driver {
	case Valkey, Redis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Password:  cfg.Password,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		return s, nil
	case Postgres:
		s, err := postgres.NewStore(postgres.Config{DSN: cfg.DSN})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return s, nil
	case Memory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
