package node

import (
	"context"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	ensureFn    func(ctx context.Context, spec *db.CollectionSpec) error
	insertFn    func(ctx context.Context, collection string, docs []db.Document) error
	findFn      func(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error)
	findOneFn   func(ctx context.Context, collection string, f filter.Expression) (*db.Document, error)
	deleteAllFn func(ctx context.Context, collection string) error
}

func (m *mockStore) EnsureCollection(ctx context.Context, spec *db.CollectionSpec) error {
	if m.ensureFn != nil {
		return m.ensureFn(ctx, spec)
	}
	return nil
}

func (m *mockStore) Insert(ctx context.Context, collection string, docs []db.Document) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, collection, docs)
	}
	return nil
}

func (m *mockStore) Find(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error) {
	if m.findFn != nil {
		return m.findFn(ctx, collection, q)
	}
	return &db.FindResult{}, nil
}

func (m *mockStore) FindOne(ctx context.Context, collection string, f filter.Expression) (*db.Document, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, collection, f)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) DeleteAll(ctx context.Context, collection string) error {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx, collection)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
