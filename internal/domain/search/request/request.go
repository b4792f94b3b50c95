package request

import (
	"math"
	"strings"
)

// Paging limits.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500
)

// Request is a normalized catalog search query.
// Empty fields place no constraint.
type Request struct {
	query       string
	category    string
	subcategory string
	tag         string
}

// New normalizes search parameters. Surrounding whitespace is trimmed.
func New(query, category, subcategory, tag string) Request {
	return Request{
		query:       strings.TrimSpace(query),
		category:    strings.TrimSpace(category),
		subcategory: strings.TrimSpace(subcategory),
		tag:         strings.TrimSpace(tag),
	}
}

// Query returns the free-text query.
func (r Request) Query() string { return r.query }

// Category returns the category facet.
func (r Request) Category() string { return r.category }

// Subcategory returns the subcategory facet.
func (r Request) Subcategory() string { return r.subcategory }

// Tag returns the tag facet as typed by the caller.
func (r Request) Tag() string { return r.tag }

// NormalizedTag returns the tag facet with hyphens turned into spaces,
// so "arrow-left" and "arrow left" select the same icons.
func (r Request) NormalizedTag() string { return strings.ReplaceAll(r.tag, "-", " ") }

// IsEmpty reports whether the request has neither query nor facets.
func (r Request) IsEmpty() bool {
	return r.query == "" && r.category == "" && r.subcategory == "" && r.tag == ""
}

// Bounds carries the configurable page size limits.
type Bounds struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultBounds returns the built-in page size limits.
func DefaultBounds() Bounds { return Bounds{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit} }

// Page selects a window of a result set.
type Page struct {
	number int
	limit  int
	offset int
}

// NewPage normalizes paging input. Non-positive page and limit fall back to
// defaults, limit is clamped to b.MaxLimit and a negative offset becomes 0.
// The page number is capped so that number*limit fits in an int.
func NewPage(number, limit, offset int, b Bounds) Page {
	if b.DefaultLimit <= 0 {
		b.DefaultLimit = DefaultLimit
	}
	if b.MaxLimit <= 0 {
		b.MaxLimit = MaxLimit
	}
	if number <= 0 {
		number = DefaultPage
	}
	if limit <= 0 {
		limit = b.DefaultLimit
	}
	if limit > b.MaxLimit {
		limit = b.MaxLimit
	}
	if maxNumber := math.MaxInt / limit; number > maxNumber {
		number = maxNumber
	}
	if offset < 0 {
		offset = 0
	}
	return Page{number: number, limit: limit, offset: offset}
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// Offset returns the legacy secondary offset applied within the page.
func (p Page) Offset() int { return p.offset }

// Start returns the index of the first record on the page.
func (p Page) Start() int { return (p.number - 1) * p.limit }
