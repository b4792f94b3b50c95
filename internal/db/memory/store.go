// Package memory implements db.Store in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type collection struct {
	spec *db.CollectionSpec
	docs map[string]db.Document
	seq  int64
}

// Store keeps collections in maps guarded by a RWMutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	closed      bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Ping reports ErrClosed after Close.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// Close marks the store closed. Data is kept.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// WaitForReady returns immediately unless the store is closed.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// EnsureCollection registers spec. Existing documents are kept.
func (s *Store) EnsureCollection(_ context.Context, spec *db.CollectionSpec) error {
	if err := spec.Validate(); err != nil {
		return &db.Error{Op: db.OpEnsure, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.collections[spec.Name]; ok {
		c.spec = spec
		return nil
	}
	s.collections[spec.Name] = &collection{spec: spec, docs: make(map[string]db.Document)}
	return nil
}

// Insert upserts docs by ID. Re-inserted documents keep their sequence.
func (s *Store) Insert(_ context.Context, name string, docs []db.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(name, db.OpInsert)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.ID == "" {
			return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("document id is required")}
		}
		var seq int64
		if prev, ok := c.docs[d.ID]; ok {
			seq = prev.Seq
		} else {
			c.seq++
			seq = c.seq
		}
		fields := make(map[string]string, len(d.Fields))
		for k, v := range d.Fields {
			fields[k] = v
		}
		c.docs[d.ID] = db.Document{ID: d.ID, Seq: seq, Fields: fields}
	}
	return nil
}

// Find filters documents in insertion order.
func (s *Store) Find(_ context.Context, name string, q *db.FindQuery) (*db.FindResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.collection(name, db.OpFind)
	if err != nil {
		return nil, err
	}
	return db.Select(c.ordered(), q), nil
}

// FindOne returns the first matching document in insertion order.
func (s *Store) FindOne(ctx context.Context, name string, f filter.Expression) (*db.Document, error) {
	res, err := s.Find(ctx, name, &db.FindQuery{Filter: f, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, &db.Error{Op: db.OpFindOne, Err: db.ErrKeyNotFound}
	}
	return &res.Docs[0], nil
}

// Count returns the number of matching documents.
func (s *Store) Count(_ context.Context, name string, f filter.Expression) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.collection(name, db.OpCount)
	if err != nil {
		return 0, err
	}
	if f.IsEmpty() {
		return len(c.docs), nil
	}
	n := 0
	for _, d := range c.docs {
		if f.Matches(d.Fields) {
			n++
		}
	}
	return n, nil
}

// DeleteAll drops every document and resets the sequence.
func (s *Store) DeleteAll(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(name, db.OpDeleteAll)
	if err != nil {
		return err
	}
	c.docs = make(map[string]db.Document)
	c.seq = 0
	return nil
}

// collection must be called with s.mu held.
func (s *Store) collection(name, op string) (*collection, error) {
	if s.closed {
		return nil, &db.Error{Op: op, Err: db.ErrClosed}
	}
	c, ok := s.collections[name]
	if !ok {
		return nil, &db.Error{Op: op, Err: fmt.Errorf("%w: %s", db.ErrCollectionNotFound, name)}
	}
	return c, nil
}

func (c *collection) ordered() []db.Document {
	docs := make([]db.Document, 0, len(c.docs))
	for _, d := range c.docs {
		docs = append(docs, d)
	}
	db.SortNatural(docs)
	return docs
}
