package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/iconhub/internal/domain"
)

// Level is the depth of a node in the category hierarchy.
type Level string

// Hierarchy levels, top-down.
const (
	LevelCategory    Level = "category"
	LevelSubcategory Level = "subcategory"
	LevelTag         Level = "tag"
)

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	switch l {
	case LevelCategory, LevelSubcategory, LevelTag:
		return true
	}
	return false
}

// Depth returns the number of path segments a node at this level has.
func (l Level) Depth() int {
	switch l {
	case LevelCategory:
		return 1
	case LevelSubcategory:
		return 2
	case LevelTag:
		return 3
	}
	return 0
}

// Parent returns the level directly above l, or "" for categories.
func (l Level) Parent() Level {
	switch l {
	case LevelSubcategory:
		return LevelCategory
	case LevelTag:
		return LevelSubcategory
	}
	return ""
}

// Hierarchy walks the category tree through explicit parent references.
type Hierarchy interface {
	ChildrenOf(ctx context.Context, parentID string) ([]Node, error)
}

// Node is a category, subcategory or tag (immutable value object).
type Node struct {
	id        string
	parentID  string
	level     Level
	name      string
	path      string
	iconCount int
	seq       int64
}

// NewNode validates and creates a Node.
// Path must have exactly level.Depth() segments; parentID is required below categories.
func NewNode(level Level, name, path, parentID string, iconCount int) (Node, error) {
	if !level.IsValid() {
		return Node{}, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidNode, level)
	}
	if name == "" {
		return Node{}, fmt.Errorf("%w: name is required", domain.ErrInvalidNode)
	}
	depth, err := depthOf(path)
	if err != nil {
		return Node{}, err
	}
	if depth != level.Depth() {
		return Node{}, fmt.Errorf("%w: %s path %q needs %d segments", domain.ErrInvalidPath, level, path, level.Depth())
	}
	if (level == LevelCategory) != (parentID == "") {
		return Node{}, fmt.Errorf("%w: parent reference mismatch for %s %q", domain.ErrInvalidNode, level, name)
	}
	if iconCount < 0 {
		return Node{}, fmt.Errorf("%w: negative icon count", domain.ErrInvalidNode)
	}
	return Node{
		id:        nodeID(path),
		parentID:  parentID,
		level:     level,
		name:      name,
		path:      path,
		iconCount: iconCount,
	}, nil
}

// ReconstructNode creates a Node without validation (storage hydration).
func ReconstructNode(id, parentID string, level Level, name, path string, iconCount int, seq int64) Node {
	return Node{
		id: id, parentID: parentID, level: level, name: name,
		path: path, iconCount: iconCount, seq: seq,
	}
}

// ID returns the node identifier.
func (n *Node) ID() string { return n.id }

// ParentID returns the parent node identifier, empty for categories.
func (n *Node) ParentID() string { return n.parentID }

// Level returns the hierarchy level.
func (n *Node) Level() Level { return n.level }

// Name returns the display name.
func (n *Node) Name() string { return n.name }

// Path returns the canonical lower-case path, e.g. /rounded/linear.
func (n *Node) Path() string { return n.path }

// IconCount returns the denormalized icon total.
func (n *Node) IconCount() int { return n.iconCount }

// Seq returns the store insertion sequence.
func (n *Node) Seq() int64 { return n.seq }

// WithIconCount returns a copy with the count replaced.
func (n *Node) WithIconCount(count int) Node {
	c := *n
	c.iconCount = count
	return c
}

// Summary returns the metadata-only view of the node.
// Parent names come from path segments, not from parent records.
func (n *Node) Summary() Summary {
	s := Summary{Name: n.name, Path: n.path, IconCount: n.iconCount}
	switch n.level {
	case LevelSubcategory:
		s.CategoryName = Segment(n.path, 1)
	case LevelTag:
		s.CategoryName = Segment(n.path, 1)
		s.SubcategoryName = Segment(n.path, 2)
	}
	return s
}
