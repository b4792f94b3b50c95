package db

import (
	"cmp"
	"slices"
)

// Select applies q to docs held in process memory.
// Drivers without server-side pattern matching share it so every backend
// agrees on filtering, faceting and windowing. docs must be in natural order.
func Select(docs []Document, q *FindQuery) *FindResult {
	if q == nil {
		q = &FindQuery{}
	}

	res := &FindResult{Facets: make(map[string][]string, len(q.Facets))}
	seen := make(map[string]map[string]bool, len(q.Facets))
	for _, f := range q.Facets {
		res.Facets[f] = []string{}
		seen[f] = make(map[string]bool)
	}

	matched := make([]Document, 0, len(docs))
	for _, d := range docs {
		if !q.Filter.Matches(d.Fields) {
			continue
		}
		matched = append(matched, d)
		for _, f := range q.Facets {
			v := d.Fields[f]
			if v == "" || seen[f][v] {
				continue
			}
			seen[f][v] = true
			res.Facets[f] = append(res.Facets[f], v)
		}
	}

	res.Total = len(matched)
	start, end := Window(len(matched), q.Offset, q.Limit)
	res.Docs = make([]Document, 0, end-start)
	for _, d := range matched[start:end] {
		res.Docs = append(res.Docs, Project(d, q.Exclude))
	}
	return res
}

// Window clamps offset/limit to [0, total]. Limit 0 means no upper bound.
func Window(total, offset, limit int) (start, end int) {
	start = min(max(offset, 0), total)
	end = total
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return start, end
}

// Project returns a copy of d without the excluded fields.
func Project(d Document, exclude []string) Document {
	fields := make(map[string]string, len(d.Fields))
	for k, v := range d.Fields {
		if !slices.Contains(exclude, k) {
			fields[k] = v
		}
	}
	return Document{ID: d.ID, Seq: d.Seq, Fields: fields}
}

// SortNatural orders docs by insertion sequence, then by ID.
func SortNatural(docs []Document) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
