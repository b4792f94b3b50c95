package request

import (
	"math"
	"strings"
	"testing"
)

func TestNew_Trims(t *testing.T) {
	r := New("  home ", " Rounded", "Linear ", " arrow-left ")
	if r.Query() != "home" || r.Category() != "Rounded" || r.Subcategory() != "Linear" {
		t.Errorf("unexpected request: %+v", r)
	}
	if r.Tag() != "arrow-left" {
		t.Errorf("Tag() = %q", r.Tag())
	}
	if r.NormalizedTag() != "arrow left" {
		t.Errorf("NormalizedTag() = %q", r.NormalizedTag())
	}
}

func TestNew_KeepsLongQuery(t *testing.T) {
	q := strings.Repeat("a", 255) + "é-icon"
	r := New(q, "", "", "")
	if r.Query() != q {
		t.Errorf("Query() changed a long query: got %d bytes, want %d", len(r.Query()), len(q))
	}
}

func TestRequest_IsEmpty(t *testing.T) {
	if !New("", " ", "", "").IsEmpty() {
		t.Error("blank request should be empty")
	}
	if New("", "", "", "home").IsEmpty() {
		t.Error("tag-only request is not empty")
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name                  string
		number, limit, offset int
		b                     Bounds
		wantNum, wantLim      int
		wantOff, wantStart    int
	}{
		{"defaults", 0, 0, 0, DefaultBounds(), 1, DefaultLimit, 0, 0},
		{"negative input", -3, -1, -5, DefaultBounds(), 1, DefaultLimit, 0, 0},
		{"second page", 2, 50, 0, DefaultBounds(), 2, 50, 0, 50},
		{"clamped limit", 1, 10_000, 0, DefaultBounds(), 1, MaxLimit, 0, 0},
		{"custom bounds", 3, 0, 4, Bounds{DefaultLimit: 20, MaxLimit: 40}, 3, 20, 4, 40},
		{"custom max", 1, 100, 0, Bounds{DefaultLimit: 20, MaxLimit: 40}, 1, 40, 0, 0},
		{"zero bounds", 1, 0, 0, Bounds{}, 1, DefaultLimit, 0, 0},
		{"huge page", math.MaxInt, 2, 0, DefaultBounds(), math.MaxInt / 2, 2, 0, (math.MaxInt/2 - 1) * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.number, tt.limit, tt.offset, tt.b)
			if p.Number() != tt.wantNum {
				t.Errorf("Number() = %d, want %d", p.Number(), tt.wantNum)
			}
			if p.Limit() != tt.wantLim {
				t.Errorf("Limit() = %d, want %d", p.Limit(), tt.wantLim)
			}
			if p.Offset() != tt.wantOff {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOff)
			}
			if p.Start() != tt.wantStart {
				t.Errorf("Start() = %d, want %d", p.Start(), tt.wantStart)
			}
		})
	}
}
