package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	DocumentStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Document is a flat record inside a collection.
// Seq is assigned by the store on first insert and defines the natural order.
type Document struct {
	ID     string
	Seq    int64
	Fields map[string]string
}

// FindQuery selects documents from a collection.
type FindQuery struct {
	Filter filter.Expression
	// Exclude lists fields left out of returned documents.
	Exclude []string
	Offset  int
	// Limit of 0 returns every document after Offset.
	Limit int
	// Facets lists fields whose distinct values are collected over the full match set.
	Facets []string
}

// FindResult holds one window of matching documents.
type FindResult struct {
	// Total counts every match, ignoring Offset and Limit.
	Total int
	Docs  []Document
	// Facets maps field name to distinct non-empty values in first-appearance order.
	Facets map[string][]string
}

// DocumentStore provides ordered document collections with pattern filtering.
type DocumentStore interface {
	EnsureCollection(ctx context.Context, spec *CollectionSpec) error
	Insert(ctx context.Context, collection string, docs []Document) error
	Find(ctx context.Context, collection string, q *FindQuery) (*FindResult, error)
	FindOne(ctx context.Context, collection string, f filter.Expression) (*Document, error)
	Count(ctx context.Context, collection string, f filter.Expression) (int, error)
	DeleteAll(ctx context.Context, collection string) error
}
