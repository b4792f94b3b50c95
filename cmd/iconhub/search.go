package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/iconhub/internal/config"
	"github.com/kailas-cloud/iconhub/internal/db/driver"
	iconhub "github.com/kailas-cloud/iconhub/pkg/sdk"
)

type searchFlags struct {
	category    string
	subcategory string
	tag         string
	page        int
	limit       int
	asJSON      bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Example: `  iconhub search home --category rounded
  iconhub search --tag arrow-left --limit 10 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := iconhub.New(cmd.Context(), sdkOptions(cfg, iconhub.WithLogger(logger))...)
			if err != nil {
				return err
			}
			defer client.Close()

			q := iconhub.Query{
				Category:    flags.category,
				Subcategory: flags.subcategory,
				Tag:         flags.tag,
			}
			if len(args) > 0 {
				q.Text = args[0]
			}
			res := client.FastSearch(cmd.Context(), q, iconhub.Page{Page: flags.page, Limit: flags.limit})

			if flags.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printSearch(cmd.OutOrStdout(), &res)
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", "", "category filter")
	cmd.Flags().StringVar(&flags.subcategory, "subcategory", "", "subcategory filter")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "tag filter (hyphens match spaces)")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page number")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "page size (default: catalog.default_page_size)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print JSON")
	return cmd
}

// sdkOptions maps the config to client options.
func sdkOptions(cfg config.Config, extra ...iconhub.Option) []iconhub.Option {
	opts := []iconhub.Option{
		iconhub.WithKeyPrefix(cfg.Storage.KeyPrefix),
		iconhub.WithAssetsBaseURL(cfg.Catalog.AssetsBaseURL),
		iconhub.WithPageSize(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize),
	}
	addr := ""
	if len(cfg.Database.Addrs) > 0 {
		addr = cfg.Database.Addrs[0]
	}
	switch cfg.Database.Driver {
	case driver.Valkey:
		opts = append(opts, iconhub.WithValkey(addr, cfg.Database.Password))
	case driver.Redis:
		opts = append(opts, iconhub.WithRedis(addr, cfg.Database.Password))
	case driver.Postgres:
		opts = append(opts, iconhub.WithPostgres(cfg.Database.DSN))
	case driver.Memory:
		opts = append(opts, iconhub.WithMemory())
	}
	return append(opts, extra...)
}

func printSearch(out io.Writer, res *iconhub.SearchResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tSUBCATEGORY\tTAG\tPATH")
	for _, ic := range res.Icons {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ic.Name, ic.Category, ic.Subcategory, ic.Tag, ic.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d of %d icons", len(res.Icons), res.TotalCount)
	if p := res.Pagination; p != nil {
		summary += fmt.Sprintf(", page %d/%d", p.Page, max(p.TotalPages, 1))
	}
	if len(res.Categories) > 0 {
		summary += "; categories: " + strings.Join(res.Categories, ", ")
	}
	_, err := fmt.Fprintln(out, summary)
	return err
}
