package export

import (
	"context"

	"github.com/kailas-cloud/iconhub/internal/db"
)

// Source reads collections in insertion order.
type Source interface {
	Find(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error)
}

// Target receives copied collections.
type Target interface {
	EnsureCollection(ctx context.Context, spec *db.CollectionSpec) error
	DeleteAll(ctx context.Context, collection string) error
	Insert(ctx context.Context, collection string, docs []db.Document) error
}

// TargetDialer opens the target store on demand.
type TargetDialer func(ctx context.Context) (Target, error)
