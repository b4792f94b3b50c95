package iconhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	cataloguc "github.com/kailas-cloud/iconhub/internal/usecase/catalog"
)

// Search returns every icon matching q, with SVG markup.
func (c *Client) Search(ctx context.Context, q Query) SearchResult {
	defer c.obs.observe("catalog.search", time.Now(), nil)

	res := c.catalog.Search(ctx, toRequest(q))
	return fromResult(&res, c.catalog.AssetsBaseURL())
}

// FastSearch returns one page of icons matching q, without SVG markup.
func (c *Client) FastSearch(ctx context.Context, q Query, p Page) SearchResult {
	defer c.obs.observe("catalog.fast_search", time.Now(), nil)

	res := c.catalog.FastSearch(ctx, toRequest(q), toPage(p, c.catalog.Bounds()))
	return fromResult(&res, c.catalog.AssetsBaseURL())
}

// Categories lists the top-level categories.
func (c *Client) Categories(ctx context.Context) []Summary {
	defer c.obs.observe("catalog.categories", time.Now(), nil)
	return fromSummaries(c.catalog.LightCategories(ctx))
}

// Subcategories lists the subcategories of the named category.
// An unknown category yields an empty list.
func (c *Client) Subcategories(ctx context.Context, category string) []Summary {
	defer c.obs.observe("catalog.subcategories", time.Now(), nil)
	return fromSummaries(c.catalog.LightSubcategories(ctx, category))
}

// Tags lists tags under the given category and subcategory.
// Either name may be empty to widen the scope.
func (c *Client) Tags(ctx context.Context, category, subcategory string) []Summary {
	defer c.obs.observe("catalog.tags", time.Now(), nil)
	return fromSummaries(c.catalog.LightTags(ctx, category, subcategory))
}

// Structure returns the full hierarchy with stored icon counts and no icons.
func (c *Client) Structure(ctx context.Context) []CategoryNode {
	defer c.obs.observe("catalog.structure", time.Now(), nil)
	return fromTree(c.catalog.Tree(ctx, cataloguc.TreeOptions{}), c.catalog.AssetsBaseURL())
}

// Tree returns the full hierarchy with icons and their SVG markup.
func (c *Client) Tree(ctx context.Context) []CategoryNode {
	defer c.obs.observe("catalog.tree", time.Now(), nil)
	return fromTree(c.catalog.Tree(ctx, cataloguc.TreeOptions{WithIcons: true}), c.catalog.AssetsBaseURL())
}

// SVG returns the markup of the icon at path. Path is either an asset path
// ("/assets/Rounded/...") or its segments without the prefix.
func (c *Client) SVG(ctx context.Context, path string) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog.svg", start, err) }()

	svg, err := c.catalog.IconSVG(ctx, domcat.AssetPath(strings.TrimPrefix(path, domcat.AssetsPrefix)))
	if err != nil {
		return "", fmt.Errorf("svg %s: %w", path, err)
	}
	return svg, nil
}
