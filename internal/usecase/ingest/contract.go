package ingest

import (
	"context"

	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
)

// IconWriter stores icons.
type IconWriter interface {
	Upsert(ctx context.Context, icons []domcat.Icon) error
	Reset(ctx context.Context) error
}

// NodeWriter stores hierarchy nodes.
type NodeWriter interface {
	Upsert(ctx context.Context, nodes []domcat.Node) error
	Reset(ctx context.Context) error
}
