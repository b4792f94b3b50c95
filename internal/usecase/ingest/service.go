package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"

	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/logger"
	"github.com/kailas-cloud/iconhub/internal/metrics"
	"github.com/kailas-cloud/iconhub/internal/slug"
)

// DefaultBatchSize is the number of icons written per store call.
const DefaultBatchSize = 500

// DefaultRoot is the asset directory inside the imported file system.
const DefaultRoot = "assets"

// Options configures one import run.
type Options struct {
	// Root is the directory holding <category>/<subcategory>/<tag>/<file>.svg.
	Root string
	// Reset clears the catalog before writing.
	Reset bool
}

// Report summarizes an import run.
type Report struct {
	Categories    int
	Subcategories int
	Tags          int
	Icons         int
	// Skipped counts files and directories that do not fit the layout.
	Skipped int
}

// Service populates the catalog from an asset tree.
type Service struct {
	icons     IconWriter
	nodes     NodeWriter
	batchSize int
}

// New creates an ingestion service.
func New(icons IconWriter, nodes NodeWriter) *Service {
	return &Service{icons: icons, nodes: nodes, batchSize: DefaultBatchSize}
}

// WithBatchSize configures the icon write batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// run holds the state of a single import.
type run struct {
	svc     *Service
	fsys    fs.FS
	root    string
	report  Report
	levels  [3][]domcat.Node
	seen    map[string]bool
	pending []domcat.Icon
}

// Import walks fsys and writes every node and icon it finds.
// Nodes are written after icons so their counts are final; within a level
// they keep directory order.
func (s *Service) Import(ctx context.Context, fsys fs.FS, opts Options) (Report, error) {
	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}
	root = strings.Trim(root, "/")

	if opts.Reset {
		if err := s.icons.Reset(ctx); err != nil {
			return Report{}, fmt.Errorf("reset icons: %w", err)
		}
		if err := s.nodes.Reset(ctx); err != nil {
			return Report{}, fmt.Errorf("reset nodes: %w", err)
		}
	}

	r := &run{svc: s, fsys: fsys, root: root, seen: make(map[string]bool)}
	if err := r.walk(ctx); err != nil {
		return r.report, err
	}
	if err := r.flush(ctx); err != nil {
		return r.report, err
	}
	for _, level := range r.levels {
		if err := s.nodes.Upsert(ctx, level); err != nil {
			return r.report, fmt.Errorf("write nodes: %w", err)
		}
	}

	rep := r.report
	metrics.ImportedRecordsTotal.WithLabelValues("category").Add(float64(rep.Categories))
	metrics.ImportedRecordsTotal.WithLabelValues("subcategory").Add(float64(rep.Subcategories))
	metrics.ImportedRecordsTotal.WithLabelValues("tag").Add(float64(rep.Tags))
	metrics.ImportedRecordsTotal.WithLabelValues("icon").Add(float64(rep.Icons))
	metrics.ImportedRecordsTotal.WithLabelValues("skipped").Add(float64(rep.Skipped))

	logger.FromContext(ctx).Info("import finished",
		zap.String("root", root),
		zap.Int("categories", rep.Categories),
		zap.Int("subcategories", rep.Subcategories),
		zap.Int("tags", rep.Tags),
		zap.Int("icons", rep.Icons),
		zap.Int("skipped", rep.Skipped),
	)
	return rep, nil
}

func (r *run) walk(ctx context.Context) error {
	cats, err := fs.ReadDir(r.fsys, r.root)
	if err != nil {
		return fmt.Errorf("read %s: %w", r.root, err)
	}
	for _, cat := range cats {
		if !r.usable(cat) {
			continue
		}
		if _, err := r.category(ctx, cat.Name()); err != nil {
			return err
		}
	}
	return nil
}

// category imports one category directory and returns its icon count.
func (r *run) category(ctx context.Context, dir string) (int, error) {
	node, ok := r.reserve(domcat.LevelCategory, dir, "/"+slug.Generate(dir), "")
	if !ok {
		return 0, nil
	}
	idx := r.add(node)

	subs, err := fs.ReadDir(r.fsys, path.Join(r.root, dir))
	if err != nil {
		return 0, fmt.Errorf("read category %s: %w", dir, err)
	}
	total := 0
	for _, sub := range subs {
		if !r.usable(sub) {
			continue
		}
		n, err := r.subcategory(ctx, &node, dir, sub.Name())
		if err != nil {
			return 0, err
		}
		total += n
	}
	r.setCount(domcat.LevelCategory, idx, total)
	r.report.Categories++
	return total, nil
}

func (r *run) subcategory(ctx context.Context, parent *domcat.Node, catDir, dir string) (int, error) {
	node, ok := r.reserve(domcat.LevelSubcategory, dir, parent.Path()+"/"+slug.Generate(dir), parent.ID())
	if !ok {
		return 0, nil
	}
	idx := r.add(node)

	tags, err := fs.ReadDir(r.fsys, path.Join(r.root, catDir, dir))
	if err != nil {
		return 0, fmt.Errorf("read subcategory %s/%s: %w", catDir, dir, err)
	}
	total := 0
	for _, tag := range tags {
		if !r.usable(tag) {
			continue
		}
		n, err := r.tag(ctx, &node, parent, catDir, dir, tag.Name())
		if err != nil {
			return 0, err
		}
		total += n
	}
	r.setCount(domcat.LevelSubcategory, idx, total)
	r.report.Subcategories++
	return total, nil
}

func (r *run) tag(ctx context.Context, parent, cat *domcat.Node, catDir, subDir, dir string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	node, ok := r.reserve(domcat.LevelTag, dir, parent.Path()+"/"+slug.Generate(dir), parent.ID())
	if !ok {
		return 0, nil
	}
	idx := r.add(node)

	rel := path.Join(catDir, subDir, dir)
	files, err := fs.ReadDir(r.fsys, path.Join(r.root, rel))
	if err != nil {
		return 0, fmt.Errorf("read tag %s: %w", rel, err)
	}
	count := 0
	for _, f := range files {
		if f.IsDir() || !strings.EqualFold(path.Ext(f.Name()), ".svg") {
			r.report.Skipped++
			continue
		}
		body, err := fs.ReadFile(r.fsys, path.Join(r.root, rel, f.Name()))
		if err != nil {
			return 0, fmt.Errorf("read icon %s/%s: %w", rel, f.Name(), err)
		}
		ic, err := domcat.NewIcon(
			strings.TrimSuffix(f.Name(), path.Ext(f.Name())),
			f.Name(),
			domcat.AssetPath(catDir, subDir, dir, f.Name()),
			cat.Name(), parent.Name(), node.Name(),
			string(body),
		)
		if err != nil {
			r.report.Skipped++
			continue
		}
		if err := r.queue(ctx, ic); err != nil {
			return 0, err
		}
		count++
	}
	r.setCount(domcat.LevelTag, idx, count)
	r.report.Tags++
	r.report.Icons += count
	return count, nil
}

// usable filters out hidden entries and stray files above the tag level.
func (r *run) usable(e fs.DirEntry) bool {
	if strings.HasPrefix(e.Name(), ".") {
		return false
	}
	if !e.IsDir() {
		r.report.Skipped++
		return false
	}
	return true
}

// reserve builds a node unless its slug is empty or already taken.
func (r *run) reserve(level domcat.Level, dir, nodePath, parentID string) (domcat.Node, bool) {
	if slug.Generate(dir) == "" || r.seen[nodePath] {
		r.report.Skipped++
		return domcat.Node{}, false
	}
	n, err := domcat.NewNode(level, slug.DisplayName(dir), nodePath, parentID, 0)
	if err != nil {
		r.report.Skipped++
		return domcat.Node{}, false
	}
	r.seen[nodePath] = true
	return n, true
}

func (r *run) add(n domcat.Node) int {
	i := n.Level().Depth() - 1
	r.levels[i] = append(r.levels[i], n)
	return len(r.levels[i]) - 1
}

func (r *run) setCount(level domcat.Level, idx, count int) {
	i := level.Depth() - 1
	r.levels[i][idx] = r.levels[i][idx].WithIconCount(count)
}

func (r *run) queue(ctx context.Context, ic domcat.Icon) error {
	r.pending = append(r.pending, ic)
	if len(r.pending) >= r.svc.batchSize {
		return r.flush(ctx)
	}
	return nil
}

func (r *run) flush(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.svc.icons.Upsert(ctx, r.pending); err != nil {
		return fmt.Errorf("write icons: %w", err)
	}
	r.pending = r.pending[:0]
	return nil
}
