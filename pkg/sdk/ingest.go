package iconhub

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	ingestuc "github.com/kailas-cloud/iconhub/internal/usecase/ingest"
)

// Import loads icons from fsys laid out as <root>/<category>/<subcategory>/<tag>/<icon>.svg.
func (c *Client) Import(ctx context.Context, fsys fs.FS, opts ImportOptions) (_ ImportReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("import", start, err) }()

	rep, err := c.importer.Import(ctx, fsys, ingestuc.Options{Root: opts.Root, Reset: opts.Reset})
	if err != nil {
		return ImportReport{}, fmt.Errorf("import: %w", err)
	}
	return fromImportReport(rep), nil
}

// ImportDir imports from a directory on disk.
func (c *Client) ImportDir(ctx context.Context, dir string, opts ImportOptions) (ImportReport, error) {
	return c.Import(ctx, os.DirFS(dir), opts)
}
