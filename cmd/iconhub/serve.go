package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/iconhub/internal/config"
	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/db/driver"
	"github.com/kailas-cloud/iconhub/internal/metrics"
	iconrepo "github.com/kailas-cloud/iconhub/internal/repository/icon"
	noderepo "github.com/kailas-cloud/iconhub/internal/repository/node"
	chiTransport "github.com/kailas-cloud/iconhub/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/iconhub/internal/usecase/catalog"
	exportuc "github.com/kailas-cloud/iconhub/internal/usecase/export"
	healthuc "github.com/kailas-cloud/iconhub/internal/usecase/health"
	"github.com/kailas-cloud/iconhub/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runServe(cmd.Context(), opts.env, cfg, logger)
		},
	}
}

// app is the wired HTTP application.
type app struct {
	handler http.Handler
	stores  []*db.Lazy
}

func (a *app) close() {
	for _, s := range a.stores {
		s.Close()
	}
}

// buildApp is the composition root. Stores connect lazily on first use,
// so the server starts even while the database is still coming up.
func buildApp(cfg config.Config, logger *zap.Logger) *app {
	metrics.RegisterCatalogMetrics()

	store := driver.Lazy(driverConfig(cfg.Database, cfg.Storage.KeyPrefix), iconrepo.Schema(), noderepo.Schema())
	a := &app{stores: []*db.Lazy{store}}

	icons := iconrepo.New(store)
	nodes := noderepo.New(store)

	catalogSvc := cataloguc.New(icons, nodes, cfg.Catalog.Domain())
	healthSvc := healthuc.New(store, icons)

	var exportSvc *exportuc.Service
	if cfg.Export.Enabled() {
		target := driver.Lazy(driverConfig(cfg.Export.Target, cfg.Storage.KeyPrefix))
		a.stores = append(a.stores, target)
		exportSvc = exportuc.New(store, func(ctx context.Context) (exportuc.Target, error) {
			return target.Connect(ctx)
		}, iconrepo.Schema(), noderepo.Schema())
	}

	server := chiTransport.NewServer(catalogSvc, healthSvc, exportSvc, cfg.Export.Keys, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}` + "\n"))
	})
	server.Register(r)

	a.handler = r
	return a
}

func runServe(ctx context.Context, env string, cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting iconhub API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("export_enabled", cfg.Export.Enabled()),
	)

	a := buildApp(cfg, logger)
	defer a.close()

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
