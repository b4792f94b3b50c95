package icon

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/db/memory"
	"github.com/kailas-cloud/iconhub/internal/domain"
	"github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

func mustIcon(t *testing.T, name, category, subcategory, tag string) catalog.Icon {
	t.Helper()
	path := catalog.AssetPath("rounded", "linear", "arrows", name+".svg")
	ic, err := catalog.NewIcon(name, name+".svg", path, category, subcategory, tag, "<svg/>")
	if err != nil {
		t.Fatalf("NewIcon: %v", err)
	}
	return ic
}

func TestSchema_Fields(t *testing.T) {
	spec := Schema()
	if spec.Name != Collection {
		t.Fatalf("expected collection %q, got %q", Collection, spec.Name)
	}
	keywords := spec.FieldsOf(db.FieldKeyword)
	if len(keywords) != 2 {
		t.Fatalf("expected 2 keyword fields, got %v", keywords)
	}
}

func TestInit_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.ensureFn = func(_ context.Context, _ *db.CollectionSpec) error {
		return errors.New("boom")
	}
	if err := repo.Init(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestFind_ExcludesSVGByDefault(t *testing.T) {
	repo, ms := newTestRepo(t)
	var got *db.FindQuery
	ms.findFn = func(_ context.Context, coll string, q *db.FindQuery) (*db.FindResult, error) {
		if coll != Collection {
			t.Errorf("expected collection %q, got %q", Collection, coll)
		}
		got = q
		return &db.FindResult{
			Total: 1,
			Docs: []db.Document{{ID: "a", Seq: 3, Fields: map[string]string{
				catalog.FieldName: "arrow-left", catalog.FieldCategory: "Rounded",
			}}},
			Facets: map[string][]string{catalog.FieldCategory: {"Rounded"}},
		}, nil
	}

	page, err := repo.Find(context.Background(), filter.Expression{}, catalog.FindOptions{Offset: 5, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Exclude) != 1 || got.Exclude[0] != catalog.FieldSVG {
		t.Errorf("expected svg excluded, got %v", got.Exclude)
	}
	if got.Offset != 5 || got.Limit != 10 {
		t.Errorf("window not forwarded: %+v", got)
	}
	if page.Total != 1 || len(page.Icons) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Icons[0].Name() != "arrow-left" || page.Icons[0].Seq() != 3 {
		t.Errorf("unexpected icon: %+v", page.Icons[0])
	}
	if page.Tags == nil {
		t.Error("missing facet must be an empty slice")
	}
}

func TestFind_WithSVG(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.findFn = func(_ context.Context, _ string, q *db.FindQuery) (*db.FindResult, error) {
		if len(q.Exclude) != 0 {
			t.Errorf("expected no exclusions, got %v", q.Exclude)
		}
		return &db.FindResult{}, nil
	}
	if _, err := repo.Find(context.Background(), filter.Expression{}, catalog.FindOptions{WithSVG: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFind_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.findFn = func(_ context.Context, _ string, _ *db.FindQuery) (*db.FindResult, error) {
		return nil, db.ErrClosed
	}
	_, err := repo.Find(context.Background(), filter.Expression{}, catalog.FindOptions{})
	if !errors.Is(err, db.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestByPath_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.ByPath(context.Background(), "/assets/missing.svg")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByPath_Found(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.findOneFn = func(_ context.Context, _ string, f filter.Expression) (*db.Document, error) {
		must := f.Must()
		if len(must) != 1 || !must[0].IsMatch() || must[0].Key() != catalog.FieldPath {
			t.Errorf("expected exact path match, got %+v", must)
		}
		return &db.Document{ID: "x", Fields: map[string]string{
			catalog.FieldPath: "/assets/a.svg", catalog.FieldSVG: "<svg/>",
		}}, nil
	}
	ic, err := repo.ByPath(context.Background(), "/assets/a.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ic.SVG() != "<svg/>" {
		t.Errorf("expected svg body, got %q", ic.SVG())
	}
}

func TestUpsert_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.insertFn = func(_ context.Context, _ string, _ []db.Document) error {
		t.Fatal("insert must not be called")
		return nil
	}
	if err := repo.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpsert_Documents(t *testing.T) {
	repo, ms := newTestRepo(t)
	ic := mustIcon(t, "arrow-left", "Rounded", "Linear", "Arrows")
	var docs []db.Document
	ms.insertFn = func(_ context.Context, _ string, d []db.Document) error {
		docs = d
		return nil
	}
	if err := repo.Upsert(context.Background(), []catalog.Icon{ic}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != ic.ID() {
		t.Fatalf("unexpected docs: %+v", docs)
	}
	if docs[0].Fields[catalog.FieldTag] != "Arrows" {
		t.Errorf("expected tag field, got %v", docs[0].Fields)
	}
}

func TestCount_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.countFn = func(_ context.Context, _ string, _ filter.Expression) (int, error) {
		return 0, errors.New("down")
	}
	if _, err := repo.Count(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRepo_MemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.NewStore())
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	icons := []catalog.Icon{
		mustIcon(t, "arrow-left", "Rounded", "Linear", "Arrows"),
		mustIcon(t, "home", "Sharp", "Bold", "Buildings"),
	}
	if err := repo.Upsert(ctx, icons); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	cond, err := filter.NewContains(catalog.FieldCategory, "sharp")
	if err != nil {
		t.Fatalf("NewContains: %v", err)
	}
	f, err := filter.NewExpression([]filter.Condition{cond}, nil, nil)
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	page, err := repo.Find(ctx, f, catalog.FindOptions{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if page.Total != 1 || page.Icons[0].Name() != "home" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Icons[0].SVG() != "" {
		t.Error("svg must be projected out")
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("expected empty after reset, got %d", n)
	}
}
