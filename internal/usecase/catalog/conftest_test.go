package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/db/memory"
	"github.com/kailas-cloud/iconhub/internal/domain"
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
	"github.com/kailas-cloud/iconhub/internal/repository/icon"
	"github.com/kailas-cloud/iconhub/internal/repository/node"
)

var errStoreDown = errors.New("store down")

// fixture is a catalog backed by the in-memory store.
type fixture struct {
	t     *testing.T
	svc   *Service
	icons *icon.Repo
	nodes *node.Repo
	ids   map[string]string // node path → id
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{
		t:     t,
		icons: icon.New(store),
		nodes: node.New(store),
		ids:   make(map[string]string),
	}
	if err := f.icons.Init(ctx); err != nil {
		t.Fatalf("icons.Init: %v", err)
	}
	if err := f.nodes.Init(ctx); err != nil {
		t.Fatalf("nodes.Init: %v", err)
	}
	f.svc = New(f.icons, f.nodes, domain.CatalogConfig{})
	return f
}

// node inserts a node under the given parent path ("" for categories).
func (f *fixture) node(level domcat.Level, name, path, parentPath string, count int) {
	f.t.Helper()
	n, err := domcat.NewNode(level, name, path, f.ids[parentPath], count)
	if err != nil {
		f.t.Fatalf("NewNode(%s): %v", path, err)
	}
	if err := f.nodes.Upsert(context.Background(), []domcat.Node{n}); err != nil {
		f.t.Fatalf("Upsert node: %v", err)
	}
	f.ids[path] = n.ID()
}

// addIcons inserts n icons named <prefix>-<i> under category/subcategory/tag.
func (f *fixture) addIcons(n int, prefix, category, subcategory, tag string) {
	f.t.Helper()
	batch := make([]domcat.Icon, 0, n)
	for i := range n {
		name := fmt.Sprintf("%s-%03d", prefix, i)
		path := domcat.AssetPath(category, subcategory, tag, name+".svg")
		ic, err := domcat.NewIcon(name, name+".svg", path, category, subcategory, tag, "<svg id=\""+name+"\"/>")
		if err != nil {
			f.t.Fatalf("NewIcon: %v", err)
		}
		batch = append(batch, ic)
	}
	if err := f.icons.Upsert(context.Background(), batch); err != nil {
		f.t.Fatalf("Upsert icons: %v", err)
	}
}

// seedHome builds Rounded/Linear/Home (3 icons) and Sharp/Linear/Home (2 icons)
// plus Rounded/Bold/Arrow Left (1 icon).
func (f *fixture) seedHome() {
	f.t.Helper()
	f.node(domcat.LevelCategory, "Rounded", "/rounded", "", 4)
	f.node(domcat.LevelCategory, "Sharp", "/sharp", "", 2)
	f.node(domcat.LevelSubcategory, "Linear", "/rounded/linear", "/rounded", 3)
	f.node(domcat.LevelSubcategory, "Bold", "/rounded/bold", "/rounded", 1)
	f.node(domcat.LevelSubcategory, "Linear", "/sharp/linear", "/sharp", 2)
	f.node(domcat.LevelTag, "Home", "/rounded/linear/home", "/rounded/linear", 3)
	f.node(domcat.LevelTag, "Arrow Left", "/rounded/bold/arrow-left", "/rounded/bold", 1)
	f.node(domcat.LevelTag, "Home", "/sharp/linear/home", "/sharp/linear", 2)

	f.addIcons(3, "house", "Rounded", "Linear", "Home")
	f.addIcons(2, "house", "Sharp", "Linear", "Home")
	f.addIcons(1, "arrow", "Rounded", "Bold", "Arrow Left")
}

// failingIcons fails every call.
type failingIcons struct{}

func (failingIcons) Find(context.Context, filter.Expression, domcat.FindOptions) (domcat.IconPage, error) {
	return domcat.IconPage{}, errStoreDown
}

func (failingIcons) ByPath(context.Context, string) (domcat.Icon, error) {
	return domcat.Icon{}, errStoreDown
}

// failingNodes fails every call.
type failingNodes struct{}

func (failingNodes) ChildrenOf(context.Context, string) ([]domcat.Node, error) {
	return nil, errStoreDown
}

func (failingNodes) List(context.Context, domcat.Level) ([]domcat.Node, error) {
	return nil, errStoreDown
}

func (failingNodes) FindByName(context.Context, domcat.Level, string, string) (domcat.Node, error) {
	return domcat.Node{}, errStoreDown
}
