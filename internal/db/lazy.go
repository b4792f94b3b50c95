package db

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// Compile-time check: Lazy implements Store.
var _ Store = (*Lazy)(nil)

// Dialer opens a connected Store.
type Dialer func(ctx context.Context) (Store, error)

// Lazy defers connecting until the first operation.
// Concurrent first callers share one dial; a successful connection is reused
// for the life of the process, a failed one is retried on the next call.
type Lazy struct {
	dial  Dialer
	group singleflight.Group

	mu     sync.RWMutex
	store  Store
	closed bool
}

// NewLazy wraps dial.
func NewLazy(dial Dialer) *Lazy {
	return &Lazy{dial: dial}
}

func (l *Lazy) current() (Store, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store, l.closed
}

// Connect returns the shared store, dialing it if needed.
func (l *Lazy) Connect(ctx context.Context) (Store, error) {
	if s, closed := l.current(); closed {
		return nil, &Error{Op: OpConnect, Err: ErrClosed}
	} else if s != nil {
		return s, nil
	}

	v, err, _ := l.group.Do("connect", func() (any, error) {
		if s, _ := l.current(); s != nil {
			return s, nil
		}
		s, err := l.dial(ctx)
		if err != nil {
			return nil, &Error{Op: OpConnect, Err: err}
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			s.Close()
			return nil, &Error{Op: OpConnect, Err: ErrClosed}
		}
		l.store = s
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Store), nil
}

// Ping connects if needed and checks connectivity.
func (l *Lazy) Ping(ctx context.Context) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// WaitForReady connects if needed and waits for the store to answer.
func (l *Lazy) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.WaitForReady(ctx, timeout)
}

// Close releases the connection, if any. Later calls fail with ErrClosed.
func (l *Lazy) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.store != nil {
		l.store.Close()
		l.store = nil
	}
}

// EnsureCollection implements DocumentStore.
func (l *Lazy) EnsureCollection(ctx context.Context, spec *CollectionSpec) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.EnsureCollection(ctx, spec)
}

// Insert implements DocumentStore.
func (l *Lazy) Insert(ctx context.Context, collection string, docs []Document) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.Insert(ctx, collection, docs)
}

// Find implements DocumentStore.
func (l *Lazy) Find(ctx context.Context, collection string, q *FindQuery) (*FindResult, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, collection, q)
}

// FindOne implements DocumentStore.
func (l *Lazy) FindOne(ctx context.Context, collection string, f filter.Expression) (*Document, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, collection, f)
}

// Count implements DocumentStore.
func (l *Lazy) Count(ctx context.Context, collection string, f filter.Expression) (int, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return 0, err
	}
	return s.Count(ctx, collection, f)
}

// DeleteAll implements DocumentStore.
func (l *Lazy) DeleteAll(ctx context.Context, collection string) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.DeleteAll(ctx, collection)
}
