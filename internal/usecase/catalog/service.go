package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/iconhub/internal/domain"
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
	"github.com/kailas-cloud/iconhub/internal/domain/search/result"
	"github.com/kailas-cloud/iconhub/internal/logger"
	"github.com/kailas-cloud/iconhub/internal/metrics"
)

// Service answers read-only catalog queries.
// Store failures never reach the caller: list and search operations return
// empty values, lookups return domain.ErrNotFound.
type Service struct {
	icons IconRepository
	nodes NodeRepository
	cfg   domain.CatalogConfig
}

// New creates a catalog service. Zero config fields take defaults.
func New(icons IconRepository, nodes NodeRepository, cfg domain.CatalogConfig) *Service {
	def := domain.DefaultCatalogConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = def.MaxPageSize
	}
	if cfg.AssetsBaseURL == "" {
		cfg.AssetsBaseURL = def.AssetsBaseURL
	}
	return &Service{icons: icons, nodes: nodes, cfg: cfg}
}

// Bounds returns the configured page size limits.
func (s *Service) Bounds() request.Bounds {
	return request.Bounds{DefaultLimit: s.cfg.PageSize, MaxLimit: s.cfg.MaxPageSize}
}

// AssetsBaseURL returns the base used to derive icon GitHub paths.
func (s *Service) AssetsBaseURL() string { return s.cfg.AssetsBaseURL }

// Projection selects what Find loads.
type Projection struct {
	// Full includes SVG markup.
	Full bool
	// Page restricts the result to one page; nil returns every match.
	Page *request.Page
}

// Find is the single search path behind Search and FastSearch.
func (s *Service) Find(ctx context.Context, req request.Request, p Projection) result.Result {
	res := result.Empty()
	if p.Page != nil {
		pg := result.NewPagination(*p.Page, 0)
		res.Pagination = &pg
	}

	f, err := buildFilter(req)
	if err != nil {
		s.fallback(ctx, "find", err)
		return res
	}

	opts := domcat.FindOptions{WithSVG: p.Full}
	if p.Page != nil {
		opts.Offset = p.Page.Start()
		opts.Limit = p.Page.Limit()
	}

	page, err := s.icons.Find(ctx, f, opts)
	if err != nil {
		s.fallback(ctx, "find", err)
		return res
	}

	res.Icons = page.Icons
	res.TotalCount = page.Total
	res.Categories = page.Categories
	res.Tags = page.Tags

	if p.Page != nil {
		pg := result.NewPagination(*p.Page, page.Total)
		res.Pagination = &pg
		// legacy offset slices the page that was already cut
		if off := p.Page.Offset(); off > 0 {
			if off >= len(res.Icons) {
				res.Icons = []domcat.Icon{}
			} else {
				res.Icons = res.Icons[off:]
			}
		}
	}
	return res
}

// Search returns every matching icon with SVG markup.
func (s *Service) Search(ctx context.Context, req request.Request) result.Result {
	return s.Find(ctx, req, Projection{Full: true})
}

// FastSearch returns one page of matching icons without SVG markup.
func (s *Service) FastSearch(ctx context.Context, req request.Request, page request.Page) result.Result {
	return s.Find(ctx, req, Projection{Page: &page})
}

// AllIcons returns every icon with SVG markup.
func (s *Service) AllIcons(ctx context.Context) []domcat.Icon {
	return s.Search(ctx, request.Request{}).Icons
}

// IconSVG returns the markup stored for an asset path.
func (s *Service) IconSVG(ctx context.Context, path string) (string, error) {
	ic, err := s.icons.ByPath(ctx, path)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.fallback(ctx, "icon_svg", err)
		}
		return "", domain.ErrNotFound
	}
	if ic.SVG() == "" {
		return "", domain.ErrNotFound
	}
	return ic.SVG(), nil
}

// fallback logs an absorbed store error.
func (s *Service) fallback(ctx context.Context, op string, err error) {
	logger.FromContext(ctx).Warn("catalog store error, returning empty result",
		zap.String("operation", op),
		zap.Error(err),
	)
	metrics.CatalogFallbacksTotal.WithLabelValues(op).Inc()
}

// buildFilter ANDs every supplied facet and ORs the free-text query across
// the four text fields. All values match as literal case-insensitive substrings.
func buildFilter(req request.Request) (filter.Expression, error) {
	var must, should []filter.Condition

	facets := []struct {
		key, value string
	}{
		{domcat.FieldCategory, req.Category()},
		{domcat.FieldSubcategory, req.Subcategory()},
		{domcat.FieldTag, req.NormalizedTag()},
	}
	for _, fc := range facets {
		if fc.value == "" {
			continue
		}
		c, err := filter.NewContains(fc.key, fc.value)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("facet %s: %w", fc.key, err)
		}
		must = append(must, c)
	}

	if q := req.Query(); q != "" {
		for _, key := range []string{
			domcat.FieldName, domcat.FieldCategory, domcat.FieldSubcategory, domcat.FieldTag,
		} {
			c, err := filter.NewContains(key, q)
			if err != nil {
				return filter.Expression{}, fmt.Errorf("query on %s: %w", key, err)
			}
			should = append(should, c)
		}
	}

	return filter.NewExpression(must, should, nil)
}
