package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/iconhub/internal/db/driver"
	logpkg "github.com/kailas-cloud/iconhub/internal/logger"
	iconrepo "github.com/kailas-cloud/iconhub/internal/repository/icon"
	noderepo "github.com/kailas-cloud/iconhub/internal/repository/node"
	ingestuc "github.com/kailas-cloud/iconhub/internal/usecase/ingest"
)

type importFlags struct {
	dir       string
	root      string
	reset     bool
	batchSize int
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load an icon asset tree into the store",
		Long: `Walk <dir>/<root>/<category>/<subcategory>/<tag>/*.svg and write every
category, subcategory, tag and icon to the configured store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			dir := flags.dir
			if dir == "" {
				dir = cfg.Catalog.AssetsDir
			}
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("assets dir: %w", err)
			}

			ctx := logpkg.ContextWithLogger(cmd.Context(), logger)
			ctx = logpkg.With(ctx, zap.String("import_id", uuid.NewString()))

			store, err := driver.Open(ctx, driverConfig(cfg.Database, cfg.Storage.KeyPrefix),
				iconrepo.Schema(), noderepo.Schema())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			svc := ingestuc.New(iconrepo.New(store), noderepo.New(store)).WithBatchSize(flags.batchSize)
			rep, err := svc.Import(ctx, os.DirFS(dir), ingestuc.Options{Root: flags.root, Reset: flags.reset})
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"imported %d categories, %d subcategories, %d tags, %d icons (%d skipped)\n",
				rep.Categories, rep.Subcategories, rep.Tags, rep.Icons, rep.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "directory holding the asset root (default: catalog.assets_dir)")
	cmd.Flags().StringVar(&flags.root, "root", ingestuc.DefaultRoot, "asset root inside --dir")
	cmd.Flags().BoolVar(&flags.reset, "reset", false, "clear the catalog before importing")
	cmd.Flags().IntVar(&flags.batchSize, "batch-size", ingestuc.DefaultBatchSize, "icons written per round trip")
	return cmd
}
