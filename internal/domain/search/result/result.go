package result

import (
	"github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
)

// Result is a search envelope.
// TotalCount covers the whole match set, not just the returned icons.
type Result struct {
	Icons      []catalog.Icon
	TotalCount int
	Categories []string
	Tags       []string
	Pagination *Pagination
}

// Empty returns a result with non-nil empty lists.
func Empty() Result {
	return Result{
		Icons:      []catalog.Icon{},
		Categories: []string{},
		Tags:       []string{},
	}
}

// Pagination describes the page a result was cut from.
type Pagination struct {
	Page       int
	Limit      int
	Offset     int
	TotalPages int
	HasMore    bool
}

// NewPagination derives the descriptor for page p over total records.
func NewPagination(p request.Page, total int) Pagination {
	totalPages := 0
	if p.Limit() > 0 {
		totalPages = (total + p.Limit() - 1) / p.Limit()
	}
	return Pagination{
		Page:       p.Number(),
		Limit:      p.Limit(),
		Offset:     p.Offset(),
		TotalPages: totalPages,
		HasMore:    p.Number()*p.Limit() < total,
	}
}
