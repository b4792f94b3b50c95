package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/iconhub/internal/db/driver"
	iconrepo "github.com/kailas-cloud/iconhub/internal/repository/icon"
	healthuc "github.com/kailas-cloud/iconhub/internal/usecase/health"
)

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the store and report the catalog size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store, err := driver.Open(cmd.Context(), driverConfig(cfg.Database, cfg.Storage.KeyPrefix),
				iconrepo.Schema())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			rep := healthuc.New(store, iconrepo.New(store)).Check(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", cfg.Database.Driver, rep.Status)
			for _, name := range slices.Sorted(maps.Keys(rep.Checks)) {
				fmt.Fprintf(out, "  %-10s %s\n", name, rep.Checks[name])
			}
			if rep.Icons >= 0 {
				fmt.Fprintf(out, "  icons      %d\n", rep.Icons)
			}
			if rep.Status != healthuc.Healthy {
				return fmt.Errorf("store is %s", rep.Status)
			}
			return nil
		},
	}
}
