package iconhub

import (
	"context"
	"io/fs"

	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
	"github.com/kailas-cloud/iconhub/internal/domain/search/result"
	cataloguc "github.com/kailas-cloud/iconhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/iconhub/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/iconhub/internal/usecase/ingest"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	searchFn        func(ctx context.Context, req request.Request) result.Result
	fastSearchFn    func(ctx context.Context, req request.Request, page request.Page) result.Result
	categoriesFn    func(ctx context.Context) []domcat.Summary
	subcategoriesFn func(ctx context.Context, category string) []domcat.Summary
	tagsFn          func(ctx context.Context, category, subcategory string) []domcat.Summary
	treeFn          func(ctx context.Context, opts cataloguc.TreeOptions) []domcat.CategoryView
	svgFn           func(ctx context.Context, path string) (string, error)
}

func (m *mockCatalogUC) Bounds() request.Bounds { return request.DefaultBounds() }

func (m *mockCatalogUC) AssetsBaseURL() string { return "https://cdn.example.com/" }

func (m *mockCatalogUC) Search(ctx context.Context, req request.Request) result.Result {
	return m.searchFn(ctx, req)
}

func (m *mockCatalogUC) FastSearch(ctx context.Context, req request.Request, page request.Page) result.Result {
	return m.fastSearchFn(ctx, req, page)
}

func (m *mockCatalogUC) LightCategories(ctx context.Context) []domcat.Summary {
	return m.categoriesFn(ctx)
}

func (m *mockCatalogUC) LightSubcategories(ctx context.Context, category string) []domcat.Summary {
	return m.subcategoriesFn(ctx, category)
}

func (m *mockCatalogUC) LightTags(ctx context.Context, category, subcategory string) []domcat.Summary {
	return m.tagsFn(ctx, category, subcategory)
}

func (m *mockCatalogUC) Tree(ctx context.Context, opts cataloguc.TreeOptions) []domcat.CategoryView {
	return m.treeFn(ctx, opts)
}

func (m *mockCatalogUC) IconSVG(ctx context.Context, path string) (string, error) {
	return m.svgFn(ctx, path)
}

// --- importUseCase mock ---

type mockImporter struct {
	fn func(ctx context.Context, fsys fs.FS, opts ingestuc.Options) (ingestuc.Report, error)
}

func (m *mockImporter) Import(ctx context.Context, fsys fs.FS, opts ingestuc.Options) (ingestuc.Report, error) {
	return m.fn(ctx, fsys, opts)
}

// --- healthUseCase mock ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }
