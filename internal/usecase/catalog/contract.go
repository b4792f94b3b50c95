package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// IconRepository reads icons.
type IconRepository interface {
	Find(ctx context.Context, f filter.Expression, opts domcat.FindOptions) (domcat.IconPage, error)
	ByPath(ctx context.Context, path string) (domcat.Icon, error)
}

// NodeRepository reads the category hierarchy.
type NodeRepository interface {
	domcat.Hierarchy
	List(ctx context.Context, level domcat.Level) ([]domcat.Node, error)
	FindByName(ctx context.Context, level domcat.Level, parentID, name string) (domcat.Node, error)
}
