package catalog

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/domain"
)

func TestNewIcon_Valid(t *testing.T) {
	ic, err := NewIcon("home", "home.svg", "/assets/rounded/linear/home/home.svg",
		"Rounded", "Linear", "Home", "<svg/>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ic.ID() == "" {
		t.Error("ID() should be derived from path")
	}
	again, _ := NewIcon("other", "home.svg", "/assets/rounded/linear/home/home.svg",
		"Rounded", "Linear", "Home", "")
	if again.ID() != ic.ID() {
		t.Error("same path should produce the same ID")
	}
	if ic.SVG() != "<svg/>" {
		t.Errorf("SVG() = %q", ic.SVG())
	}
}

func TestNewIcon_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    [7]string
		wantErr error
	}{
		{"empty name", [7]string{"", "a.svg", "/assets/a.svg", "c", "s", "t", ""}, domain.ErrInvalidIcon},
		{"empty filename", [7]string{"a", "", "/assets/a.svg", "c", "s", "t", ""}, domain.ErrInvalidIcon},
		{"bad path", [7]string{"a", "a.svg", "/icons/a.svg", "c", "s", "t", ""}, domain.ErrInvalidPath},
		{"missing tag", [7]string{"a", "a.svg", "/assets/a.svg", "c", "s", "", ""}, domain.ErrInvalidIcon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			_, err := NewIcon(a[0], a[1], a[2], a[3], a[4], a[5], a[6])
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGithubURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"", "/assets/rounded/linear/home/home.svg",
			domain.DefaultAssetsBaseURL + "rounded/linear/home/home.svg"},
		{"https://cdn.example.com/icons", "/assets/a/b.svg", "https://cdn.example.com/icons/a/b.svg"},
		{"https://cdn.example.com/", "/other/a.svg", "https://cdn.example.com/other/a.svg"},
	}
	for _, tt := range tests {
		if got := GithubURL(tt.base, tt.path); got != tt.want {
			t.Errorf("GithubURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestAssetPath(t *testing.T) {
	got := AssetPath("rounded", "linear", "", "/home/", "home.svg")
	if got != "/assets/rounded/linear/home/home.svg" {
		t.Errorf("AssetPath = %q", got)
	}
}

func TestSegment(t *testing.T) {
	if got := Segment("/rounded/action/basic", 1); got != "rounded" {
		t.Errorf("Segment 1 = %q", got)
	}
	if got := Segment("/rounded/action/basic", 2); got != "action" {
		t.Errorf("Segment 2 = %q", got)
	}
	if got := Segment("/rounded", 2); got != "" {
		t.Errorf("out of range = %q, want empty", got)
	}
	if got := Segment("/rounded", -1); got != "" {
		t.Errorf("negative = %q, want empty", got)
	}
}

func TestNewNode_Valid(t *testing.T) {
	cat, err := NewNode(LevelCategory, "Rounded", "/rounded", "", 5)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	sub, err := NewNode(LevelSubcategory, "Linear", "/rounded/linear", cat.ID(), 5)
	if err != nil {
		t.Fatalf("subcategory: %v", err)
	}
	tag, err := NewNode(LevelTag, "Home", "/rounded/linear/home", sub.ID(), 3)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if tag.ParentID() != sub.ID() || sub.ParentID() != cat.ID() {
		t.Error("parent references not kept")
	}
	if cat.ID() != NodeID("/rounded") {
		t.Error("ID should be derived from path")
	}
}

func TestNewNode_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		nodeName string
		path     string
		parent   string
		count    int
		wantErr  error
	}{
		{"unknown level", "icon", "x", "/x", "", 0, domain.ErrInvalidNode},
		{"empty name", LevelCategory, "", "/x", "", 0, domain.ErrInvalidNode},
		{"no leading slash", LevelCategory, "x", "x", "", 0, domain.ErrInvalidPath},
		{"trailing slash", LevelCategory, "x", "/x/", "", 0, domain.ErrInvalidPath},
		{"empty segment", LevelTag, "x", "/a//x", "p", 0, domain.ErrInvalidPath},
		{"depth mismatch", LevelSubcategory, "x", "/x", "p", 0, domain.ErrInvalidPath},
		{"category with parent", LevelCategory, "x", "/x", "p", 0, domain.ErrInvalidNode},
		{"tag without parent", LevelTag, "x", "/a/b/x", "", 0, domain.ErrInvalidNode},
		{"negative count", LevelCategory, "x", "/x", "", -1, domain.ErrInvalidNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNode(tt.level, tt.nodeName, tt.path, tt.parent, tt.count)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNode_Summary(t *testing.T) {
	tag := ReconstructNode("t", "s", LevelTag, "Basic", "/rounded/action/basic", 7, 1)
	s := tag.Summary()
	if s.CategoryName != "rounded" || s.SubcategoryName != "action" {
		t.Errorf("summary parents = %q/%q", s.CategoryName, s.SubcategoryName)
	}
	if s.Name != "Basic" || s.IconCount != 7 {
		t.Errorf("summary = %+v", s)
	}

	sub := ReconstructNode("s", "c", LevelSubcategory, "Action", "/rounded/action", 7, 1)
	if got := sub.Summary(); got.CategoryName != "rounded" || got.SubcategoryName != "" {
		t.Errorf("subcategory summary = %+v", got)
	}
	cat := ReconstructNode("c", "", LevelCategory, "Rounded", "/rounded", 7, 1)
	if got := cat.Summary(); got.CategoryName != "" {
		t.Errorf("category summary = %+v", got)
	}
}

func TestLevel(t *testing.T) {
	if LevelTag.Parent() != LevelSubcategory || LevelSubcategory.Parent() != LevelCategory {
		t.Error("unexpected parent levels")
	}
	if LevelCategory.Parent() != "" {
		t.Error("category has no parent level")
	}
	if Level("x").Depth() != 0 || LevelTag.Depth() != 3 {
		t.Error("unexpected depths")
	}
}

func TestTotals(t *testing.T) {
	if got := TotalIcons([]Summary{{IconCount: 2}, {IconCount: 3}}); got != 5 {
		t.Errorf("TotalIcons = %d", got)
	}
	if got := TreeIconCount([]CategoryView{{IconCount: 4}, {IconCount: 1}}); got != 5 {
		t.Errorf("TreeIconCount = %d", got)
	}
}
