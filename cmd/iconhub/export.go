package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/iconhub/internal/db/driver"
	logpkg "github.com/kailas-cloud/iconhub/internal/logger"
	iconrepo "github.com/kailas-cloud/iconhub/internal/repository/icon"
	noderepo "github.com/kailas-cloud/iconhub/internal/repository/node"
	exportuc "github.com/kailas-cloud/iconhub/internal/usecase/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the catalog into the export target store",
		Long: `Replace every catalog collection in export.target with the contents of
the primary store, in insertion order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Export.Target.Driver == "" {
				return errors.New("export.target is not configured")
			}

			ctx := logpkg.ContextWithLogger(cmd.Context(), logger)
			source, err := driver.Open(ctx, driverConfig(cfg.Database, cfg.Storage.KeyPrefix),
				iconrepo.Schema(), noderepo.Schema())
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer source.Close()

			target := driver.Lazy(driverConfig(cfg.Export.Target, cfg.Storage.KeyPrefix))
			defer target.Close()

			svc := exportuc.New(source, func(ctx context.Context) (exportuc.Target, error) {
				return target.Connect(ctx)
			}, iconrepo.Schema(), noderepo.Schema()).WithBatchSize(batchSize)

			rep, err := svc.Export(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range rep.Results {
				line := fmt.Sprintf("%-8s %-10s %d", r.Collection, r.Status, r.Count)
				if r.Err != nil {
					line += "  " + r.Err.Error()
				}
				fmt.Fprintln(out, line)
			}
			if !rep.Success() {
				return errors.New("export incomplete")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", exportuc.DefaultBatchSize, "documents copied per round trip")
	return cmd
}
