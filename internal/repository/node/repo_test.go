package node

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/db/memory"
	"github.com/kailas-cloud/iconhub/internal/domain"
	"github.com/kailas-cloud/iconhub/internal/domain/catalog"
)

func mustNode(t *testing.T, level catalog.Level, name, path, parentID string, count int) catalog.Node {
	t.Helper()
	n, err := catalog.NewNode(level, name, path, parentID, count)
	if err != nil {
		t.Fatalf("NewNode(%s): %v", path, err)
	}
	return n
}

// seed builds Rounded/Linear/{Arrows, Arrow Heads} and Sharp/Linear/Arrows.
func seed(t *testing.T) (*Repo, []catalog.Node) {
	t.Helper()
	ctx := context.Background()
	repo := New(memory.NewStore())
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	rounded := mustNode(t, catalog.LevelCategory, "Rounded", "/rounded", "", 3)
	sharp := mustNode(t, catalog.LevelCategory, "Sharp", "/sharp", "", 1)
	rLinear := mustNode(t, catalog.LevelSubcategory, "Linear", "/rounded/linear", rounded.ID(), 3)
	sLinear := mustNode(t, catalog.LevelSubcategory, "Linear", "/sharp/linear", sharp.ID(), 1)
	nodes := []catalog.Node{
		rounded, sharp, rLinear, sLinear,
		mustNode(t, catalog.LevelTag, "Arrows", "/rounded/linear/arrows", rLinear.ID(), 2),
		mustNode(t, catalog.LevelTag, "Arrow Heads", "/rounded/linear/arrow-heads", rLinear.ID(), 1),
		mustNode(t, catalog.LevelTag, "Arrows", "/sharp/linear/arrows", sLinear.ID(), 1),
	}
	if err := repo.Upsert(ctx, nodes); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	return repo, nodes
}

func TestList_InsertionOrder(t *testing.T) {
	repo, _ := seed(t)
	cats, err := repo.List(context.Background(), catalog.LevelCategory)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cats) != 2 || cats[0].Name() != "Rounded" || cats[1].Name() != "Sharp" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if cats[0].IconCount() != 3 {
		t.Errorf("expected icon count 3, got %d", cats[0].IconCount())
	}
}

func TestChildrenOf(t *testing.T) {
	repo, nodes := seed(t)
	tags, err := repo.ChildrenOf(context.Background(), nodes[2].ID())
	if err != nil {
		t.Fatalf("ChildrenOf: %v", err)
	}
	if len(tags) != 2 || tags[0].Name() != "Arrows" || tags[1].Name() != "Arrow Heads" {
		t.Fatalf("unexpected tags: %+v", tags)
	}
	if tags[0].ParentID() != nodes[2].ID() {
		t.Errorf("parent reference lost")
	}
}

func TestFindByName(t *testing.T) {
	repo, nodes := seed(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		level    catalog.Level
		parentID string
		query    string
		wantPath string
		wantErr  error
	}{
		{"case insensitive", catalog.LevelCategory, "", "rounded", "/rounded", nil},
		{"slug form", catalog.LevelTag, nodes[2].ID(), "arrow-heads", "/rounded/linear/arrow-heads", nil},
		{"scoped to parent", catalog.LevelSubcategory, nodes[1].ID(), "LINEAR", "/sharp/linear", nil},
		{"first across parents", catalog.LevelTag, "", "arrows", "/rounded/linear/arrows", nil},
		{"unknown", catalog.LevelCategory, "", "Outline", "", domain.ErrNotFound},
		{"blank", catalog.LevelCategory, "", "  ", "", domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.FindByName(ctx, tt.level, tt.parentID, tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Path() != tt.wantPath {
				t.Errorf("expected %s, got %s", tt.wantPath, n.Path())
			}
		})
	}
}

func TestByID(t *testing.T) {
	repo, nodes := seed(t)
	ctx := context.Background()

	n, err := repo.ByID(ctx, nodes[3].ID())
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if n.Path() != "/sharp/linear" || n.Level() != catalog.LevelSubcategory {
		t.Errorf("unexpected node: %+v", n)
	}
	if _, err := repo.ByID(ctx, catalog.NodeID("/outline")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.ByID(ctx, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestUpsert_ReplacesCount(t *testing.T) {
	repo, nodes := seed(t)
	ctx := context.Background()

	updated := nodes[0].WithIconCount(10)
	if err := repo.Upsert(ctx, []catalog.Node{updated}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	cats, err := repo.List(ctx, catalog.LevelCategory)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// upsert keeps the original position
	if cats[0].Name() != "Rounded" || cats[0].IconCount() != 10 {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}

func TestList_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.findFn = func(_ context.Context, _ string, _ *db.FindQuery) (*db.FindResult, error) {
		return nil, &db.Error{Op: db.OpFind, Err: db.ErrClosed}
	}
	_, err := repo.List(context.Background(), catalog.LevelCategory)
	if !errors.Is(err, db.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestReset(t *testing.T) {
	repo, ms := newTestRepo(t)
	called := false
	ms.deleteAllFn = func(_ context.Context, coll string) error {
		called = coll == Collection
		return nil
	}
	if err := repo.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !called {
		t.Error("expected DeleteAll on nodes collection")
	}
}
