package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	spec := db.NewCollection("icons").Text("name", "tag").Keyword("path").Text("svg").MustBuild()
	if err := s.EnsureCollection(context.Background(), spec); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}
	return s
}

func doc(id, name, tag string) db.Document {
	return db.Document{ID: id, Fields: map[string]string{
		"name": name, "tag": tag, "path": "/assets/" + id, "svg": "<svg id=\"" + id + "\"/>",
	}}
}

func tagFilter(t *testing.T, v string) filter.Expression {
	t.Helper()
	c, err := filter.NewContains("tag", v)
	if err != nil {
		t.Fatal(err)
	}
	e, _ := filter.NewExpression([]filter.Condition{c}, nil, nil)
	return e
}

func TestStore_InsertKeepsOrderAndSeq(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Insert(ctx, "icons", []db.Document{doc("b", "B", "home"), doc("a", "A", "home")}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	// Повторная вставка не меняет позицию документа.
	if err := s.Insert(ctx, "icons", []db.Document{doc("b", "B2", "home")}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	res, err := s.Find(ctx, "icons", &db.FindQuery{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}
	if res.Docs[0].ID != "b" || res.Docs[1].ID != "a" {
		t.Errorf("order = %s,%s, want b,a", res.Docs[0].ID, res.Docs[1].ID)
	}
	if res.Docs[0].Fields["name"] != "B2" {
		t.Errorf("upsert did not replace fields: %v", res.Docs[0].Fields)
	}
	if res.Docs[0].Seq != 1 {
		t.Errorf("Seq = %d, want 1", res.Docs[0].Seq)
	}
}

func TestStore_FindFilterFacetsWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_ = s.Insert(ctx, "icons", []db.Document{
		doc("1", "Home", "Home"),
		doc("2", "Office", "Work"),
		doc("3", "House", "home"),
		doc("4", "Cabin", "HOME"),
	})

	res, err := s.Find(ctx, "icons", &db.FindQuery{
		Filter:  tagFilter(t, "home"),
		Exclude: []string{"svg"},
		Offset:  1,
		Limit:   1,
		Facets:  []string{"tag"},
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
	if len(res.Docs) != 1 || res.Docs[0].ID != "3" {
		t.Fatalf("Docs = %+v, want [3]", res.Docs)
	}
	if _, ok := res.Docs[0].Fields["svg"]; ok {
		t.Error("svg should be excluded")
	}
	want := []string{"Home", "home", "HOME"}
	got := res.Facets["tag"]
	if len(got) != len(want) {
		t.Fatalf("facets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("facets[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStore_FindOneAndCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_ = s.Insert(ctx, "icons", []db.Document{doc("1", "Home", "home"), doc("2", "Work", "work")})

	m, _ := filter.NewMatch("path", "/assets/2")
	e, _ := filter.NewExpression([]filter.Condition{m}, nil, nil)
	d, err := s.FindOne(ctx, "icons", e)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if d.ID != "2" {
		t.Errorf("ID = %q, want 2", d.ID)
	}

	m, _ = filter.NewMatch("path", "/assets/missing")
	e, _ = filter.NewExpression([]filter.Condition{m}, nil, nil)
	if _, err := s.FindOne(ctx, "icons", e); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("err = %v, want ErrKeyNotFound", err)
	}

	n, err := s.Count(ctx, "icons", filter.Expression{})
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v; want 2", n, err)
	}
	n, _ = s.Count(ctx, "icons", tagFilter(t, "work"))
	if n != 1 {
		t.Errorf("filtered Count = %d, want 1", n)
	}
}

func TestStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_ = s.Insert(ctx, "icons", []db.Document{doc("1", "Home", "home")})
	if err := s.DeleteAll(ctx, "icons"); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	n, _ := s.Count(ctx, "icons", filter.Expression{})
	if n != 0 {
		t.Errorf("Count = %d after DeleteAll", n)
	}
	_ = s.Insert(ctx, "icons", []db.Document{doc("2", "Work", "work")})
	res, _ := s.Find(ctx, "icons", nil)
	if res.Docs[0].Seq != 1 {
		t.Errorf("Seq = %d, want sequence reset to 1", res.Docs[0].Seq)
	}
}

func TestStore_UnknownCollection(t *testing.T) {
	s := NewStore()
	_, err := s.Find(context.Background(), "nope", nil)
	if !errors.Is(err, db.ErrCollectionNotFound) {
		t.Errorf("err = %v, want ErrCollectionNotFound", err)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpFind {
		t.Errorf("err = %v, want *db.Error with op FIND", err)
	}
}

func TestStore_Closed(t *testing.T) {
	s := newTestStore(t)
	s.Close()
	if err := s.Ping(context.Background()); !errors.Is(err, db.ErrClosed) {
		t.Errorf("Ping err = %v, want ErrClosed", err)
	}
	if _, err := s.Find(context.Background(), "icons", nil); !errors.Is(err, db.ErrClosed) {
		t.Errorf("Find err = %v, want ErrClosed", err)
	}
}

func TestStore_InvalidSpec(t *testing.T) {
	err := NewStore().EnsureCollection(context.Background(), &db.CollectionSpec{Name: "bad name"})
	if !errors.Is(err, db.ErrInvalidSchema) {
		t.Errorf("err = %v, want ErrInvalidSchema", err)
	}
}

func TestStore_ConcurrentInsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := tagFilter(t, "home")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i))
			_ = s.Insert(ctx, "icons", []db.Document{doc(id, id, "home")})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Find(ctx, "icons", &db.FindQuery{Filter: f})
		}()
	}
	wg.Wait()

	n, _ := s.Count(ctx, "icons", filter.Expression{})
	if n != 8 {
		t.Errorf("Count = %d, want 8", n)
	}
}
