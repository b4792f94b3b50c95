package db

import (
	"testing"

	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

func docs(n int) []Document {
	out := make([]Document, n)
	for i := range n {
		out[i] = Document{
			ID:  string(rune('a' + i)),
			Seq: int64(i + 1),
			Fields: map[string]string{
				"name": string(rune('a' + i)),
				"tag":  []string{"home", "work"}[i%2],
				"svg":  "<svg/>",
			},
		}
	}
	return out
}

func TestWindow(t *testing.T) {
	tests := []struct {
		total, offset, limit int
		wantStart, wantEnd   int
	}{
		{10, 0, 0, 0, 10},
		{10, 0, 3, 0, 3},
		{10, 8, 5, 8, 10},
		{10, 20, 5, 10, 10},
		{10, -2, 3, 0, 3},
		{0, 0, 5, 0, 0},
	}
	for _, tt := range tests {
		s, e := Window(tt.total, tt.offset, tt.limit)
		if s != tt.wantStart || e != tt.wantEnd {
			t.Errorf("Window(%d,%d,%d) = %d,%d; want %d,%d",
				tt.total, tt.offset, tt.limit, s, e, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestSelect_NilQuery(t *testing.T) {
	res := Select(docs(3), nil)
	if res.Total != 3 || len(res.Docs) != 3 {
		t.Errorf("Total=%d len=%d, want 3/3", res.Total, len(res.Docs))
	}
}

func TestSelect_FilterFacetsProjection(t *testing.T) {
	c, _ := filter.NewContains("tag", "home")
	f, _ := filter.NewExpression([]filter.Condition{c}, nil, nil)

	res := Select(docs(5), &FindQuery{
		Filter:  f,
		Exclude: []string{"svg"},
		Limit:   2,
		Facets:  []string{"tag", "missing"},
	})
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
	if len(res.Docs) != 2 || res.Docs[0].ID != "a" || res.Docs[1].ID != "c" {
		t.Errorf("Docs = %+v", res.Docs)
	}
	if _, ok := res.Docs[0].Fields["svg"]; ok {
		t.Error("svg should be excluded")
	}
	if got := res.Facets["tag"]; len(got) != 1 || got[0] != "home" {
		t.Errorf("tag facets = %v", got)
	}
	if got, ok := res.Facets["missing"]; !ok || len(got) != 0 {
		t.Errorf("missing facet = %v, %v; want empty non-nil", got, ok)
	}
}

func TestSelect_PagesCoverAllDocs(t *testing.T) {
	all := docs(7)
	seen := make(map[string]bool)
	for offset := 0; offset < 7; offset += 3 {
		res := Select(all, &FindQuery{Offset: offset, Limit: 3})
		for _, d := range res.Docs {
			if seen[d.ID] {
				t.Fatalf("duplicate %s at offset %d", d.ID, offset)
			}
			seen[d.ID] = true
		}
	}
	if len(seen) != 7 {
		t.Errorf("seen %d docs, want 7", len(seen))
	}
}

func TestProject_DoesNotAlias(t *testing.T) {
	d := Document{ID: "x", Fields: map[string]string{"a": "1"}}
	p := Project(d, nil)
	p.Fields["a"] = "2"
	if d.Fields["a"] != "1" {
		t.Error("Project must copy fields")
	}
}

func TestSortNatural(t *testing.T) {
	in := []Document{{ID: "b", Seq: 2}, {ID: "z", Seq: 1}, {ID: "a", Seq: 2}}
	SortNatural(in)
	if in[0].ID != "z" || in[1].ID != "a" || in[2].ID != "b" {
		t.Errorf("order = %s,%s,%s", in[0].ID, in[1].ID, in[2].ID)
	}
}
