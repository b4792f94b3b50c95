package iconhub

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/db/driver"
	"github.com/kailas-cloud/iconhub/internal/domain"
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
	"github.com/kailas-cloud/iconhub/internal/domain/search/result"
	iconrepo "github.com/kailas-cloud/iconhub/internal/repository/icon"
	noderepo "github.com/kailas-cloud/iconhub/internal/repository/node"
	cataloguc "github.com/kailas-cloud/iconhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/iconhub/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/iconhub/internal/usecase/ingest"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "iconhub:"
)

// Внутренние интерфейсы для подмены в тестах.
type catalogUseCase interface {
	Bounds() request.Bounds
	AssetsBaseURL() string
	Search(ctx context.Context, req request.Request) result.Result
	FastSearch(ctx context.Context, req request.Request, page request.Page) result.Result
	LightCategories(ctx context.Context) []domcat.Summary
	LightSubcategories(ctx context.Context, category string) []domcat.Summary
	LightTags(ctx context.Context, category, subcategory string) []domcat.Summary
	Tree(ctx context.Context, opts cataloguc.TreeOptions) []domcat.CategoryView
	IconSVG(ctx context.Context, path string) (string, error)
}

type importUseCase interface {
	Import(ctx context.Context, fsys fs.FS, opts ingestuc.Options) (ingestuc.Report, error)
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the iconhub SDK entry point.
type Client struct {
	store     db.Store
	catalog   catalogUseCase
	importer  importUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client, connects to the store and ensures the catalog
// collections exist. The provided context bounds the initial connection.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("iconhub: store required (use WithValkey, WithRedis, WithPostgres or WithMemory)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := driver.Open(ctx, driverConfig(cfg), iconrepo.Schema(), noderepo.Schema())
	if err != nil {
		return nil, fmt.Errorf("iconhub: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func driverConfig(cfg *clientConfig) driver.Config {
	return driver.Config{
		Driver:           cfg.driver,
		Addrs:            cfg.addrs,
		Password:         cfg.password,
		DSN:              cfg.dsn,
		KeyPrefix:        cfg.keyPrefix,
		ReadinessTimeout: defaultReadinessTimeout,
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	icons := iconrepo.New(store)
	nodes := noderepo.New(store)

	catCfg := domain.DefaultCatalogConfig()
	if cfg.assetsBaseURL != "" {
		catCfg.AssetsBaseURL = cfg.assetsBaseURL
	}
	if cfg.defaultPageSize > 0 {
		catCfg.PageSize = cfg.defaultPageSize
	}
	if cfg.maxPageSize > 0 {
		catCfg.MaxPageSize = cfg.maxPageSize
	}

	return &Client{
		store:     store,
		catalog:   cataloguc.New(icons, nodes, catCfg),
		importer:  ingestuc.New(icons, nodes),
		healthSvc: healthuc.New(store, icons),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
