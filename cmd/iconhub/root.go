package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/iconhub/internal/config"
	"github.com/kailas-cloud/iconhub/internal/db/driver"
	logpkg "github.com/kailas-cloud/iconhub/internal/logger"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	env string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "iconhub",
		Short: "SVG icon catalog service",
		Long: `iconhub serves a categorized SVG icon catalog over HTTP.

Icons are grouped as category / subcategory / tag and kept in Valkey,
Redis, PostgreSQL or memory. Use "import" to load an asset tree and
"serve" to run the API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment (local, dev, prod)")

	cmd.AddCommand(
		newServeCmd(opts),
		newImportCmd(opts),
		newSearchCmd(opts),
		newPingCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the config and builds a logger. Server logs follow the
// environment; one-shot commands log warnings to stderr only.
func (o *rootOptions) load(server bool) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	var logger *zap.Logger
	if server {
		logger, err = logpkg.NewLogger(o.env, cfg.Logging.Level)
	} else {
		logger, err = logpkg.NewLogger("cli")
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

// driverConfig maps a database section to driver settings.
func driverConfig(d config.DatabaseConfig, keyPrefix string) driver.Config {
	return driver.Config{
		Driver:           d.Driver,
		Addrs:            d.Addrs,
		Password:         d.Password,
		DSN:              d.DSN,
		KeyPrefix:        keyPrefix,
		ReadinessTimeout: time.Duration(d.ReadinessTimeout) * time.Second,
	}
}
