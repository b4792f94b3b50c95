package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
	"github.com/kailas-cloud/iconhub/internal/metrics"
)

var _ Store = (*Instrumented)(nil)

// Instrumented records per-operation latency of an inner Store.
type Instrumented struct {
	inner  Store
	driver string
}

// NewInstrumented wraps s; driver labels every observation.
func NewInstrumented(s Store, driver string) *Instrumented {
	return &Instrumented{inner: s, driver: driver}
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StoreOperationDuration.WithLabelValues(i.driver, op, status).Observe(time.Since(start).Seconds())
}

// Ping checks connectivity.
func (i *Instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := i.inner.Ping(ctx)
	i.observe(OpPing, start, err)
	return err
}

// Close releases the inner store.
func (i *Instrumented) Close() { i.inner.Close() }

// WaitForReady delegates to the inner store.
func (i *Instrumented) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return i.inner.WaitForReady(ctx, timeout)
}

// EnsureCollection delegates to the inner store.
func (i *Instrumented) EnsureCollection(ctx context.Context, spec *CollectionSpec) error {
	start := time.Now()
	err := i.inner.EnsureCollection(ctx, spec)
	i.observe(OpEnsure, start, err)
	return err
}

// Insert delegates to the inner store.
func (i *Instrumented) Insert(ctx context.Context, collection string, docs []Document) error {
	start := time.Now()
	err := i.inner.Insert(ctx, collection, docs)
	i.observe(OpInsert, start, err)
	return err
}

// Find delegates to the inner store.
func (i *Instrumented) Find(ctx context.Context, collection string, q *FindQuery) (*FindResult, error) {
	start := time.Now()
	res, err := i.inner.Find(ctx, collection, q)
	i.observe(OpFind, start, err)
	return res, err
}

// FindOne delegates to the inner store. A miss is not counted as an error.
func (i *Instrumented) FindOne(ctx context.Context, collection string, f filter.Expression) (*Document, error) {
	start := time.Now()
	doc, err := i.inner.FindOne(ctx, collection, f)
	observed := err
	if IsNotFound(err) {
		observed = nil
	}
	i.observe(OpFindOne, start, observed)
	return doc, err
}

// Count delegates to the inner store.
func (i *Instrumented) Count(ctx context.Context, collection string, f filter.Expression) (int, error) {
	start := time.Now()
	n, err := i.inner.Count(ctx, collection, f)
	i.observe(OpCount, start, err)
	return n, err
}

// DeleteAll delegates to the inner store.
func (i *Instrumented) DeleteAll(ctx context.Context, collection string) error {
	start := time.Now()
	err := i.inner.DeleteAll(ctx, collection)
	i.observe(OpDeleteAll, start, err)
	return err
}
