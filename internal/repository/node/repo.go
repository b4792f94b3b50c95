package node

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain"
	"github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
	"github.com/kailas-cloud/iconhub/internal/slug"
)

// Collection is the store collection holding hierarchy nodes.
const Collection = "nodes"

// fieldID duplicates the document id so ByID can filter on it.
const fieldID = "id"

// store is the consumer interface for nodes (ISP).
type store interface {
	EnsureCollection(ctx context.Context, spec *db.CollectionSpec) error
	Insert(ctx context.Context, collection string, docs []db.Document) error
	Find(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error)
	FindOne(ctx context.Context, collection string, f filter.Expression) (*db.Document, error)
	DeleteAll(ctx context.Context, collection string) error
}

// Repo implements usecase/catalog.NodeRepository and catalog.Hierarchy.
type Repo struct {
	store store
}

var _ catalog.Hierarchy = (*Repo)(nil)

// New creates a node repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Schema returns the node collection definition.
func Schema() *db.CollectionSpec {
	return db.NewCollection(Collection).
		Keyword(fieldID, catalog.FieldLevel, catalog.FieldParentID, catalog.FieldPath).
		Text(catalog.FieldName).
		Numeric(catalog.FieldIconCount).
		MustBuild()
}

// Init ensures the collection exists.
func (r *Repo) Init(ctx context.Context) error {
	if err := r.store.EnsureCollection(ctx, Schema()); err != nil {
		return fmt.Errorf("ensure %s: %w", Collection, err)
	}
	return nil
}

// List returns every node of a level in insertion order.
func (r *Repo) List(ctx context.Context, level catalog.Level) ([]catalog.Node, error) {
	f, err := exactly(catalog.FieldLevel, string(level))
	if err != nil {
		return nil, err
	}
	return r.find(ctx, f)
}

// ChildrenOf returns the direct children of a node in insertion order.
func (r *Repo) ChildrenOf(ctx context.Context, parentID string) ([]catalog.Node, error) {
	f, err := exactly(catalog.FieldParentID, parentID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, f)
}

// FindByName returns the first node of a level whose name equals name
// case-insensitively or whose slug matches it. An empty parentID searches
// across all parents.
func (r *Repo) FindByName(ctx context.Context, level catalog.Level, parentID, name string) (catalog.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Node{}, domain.ErrNotFound
	}

	var (
		nodes []catalog.Node
		err   error
	)
	if parentID != "" {
		nodes, err = r.ChildrenOf(ctx, parentID)
	} else {
		nodes, err = r.List(ctx, level)
	}
	if err != nil {
		return catalog.Node{}, err
	}

	for i := range nodes {
		n := &nodes[i]
		if n.Level() != level {
			continue
		}
		if strings.EqualFold(n.Name(), name) || slug.Equal(n.Name(), name) {
			return *n, nil
		}
	}
	return catalog.Node{}, domain.ErrNotFound
}

// ByID returns a single node.
func (r *Repo) ByID(ctx context.Context, id string) (catalog.Node, error) {
	if id == "" {
		return catalog.Node{}, domain.ErrNotFound
	}
	f, err := exactly(fieldID, id)
	if err != nil {
		return catalog.Node{}, err
	}
	doc, err := r.store.FindOne(ctx, Collection, f)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return catalog.Node{}, domain.ErrNotFound
		}
		return catalog.Node{}, fmt.Errorf("find one %s %s: %w", Collection, id, err)
	}
	return fromDocument(doc), nil
}

// Upsert stores nodes keyed by their ID. Parents must precede children
// so that insertion order matches hierarchy order.
func (r *Repo) Upsert(ctx context.Context, nodes []catalog.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	docs := make([]db.Document, len(nodes))
	for i := range nodes {
		docs[i] = toDocument(&nodes[i])
	}
	if err := r.store.Insert(ctx, Collection, docs); err != nil {
		return fmt.Errorf("insert %s: %w", Collection, err)
	}
	return nil
}

// Reset removes every node.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, Collection); err != nil {
		return fmt.Errorf("delete all %s: %w", Collection, err)
	}
	return nil
}

func (r *Repo) find(ctx context.Context, f filter.Expression) ([]catalog.Node, error) {
	res, err := r.store.Find(ctx, Collection, &db.FindQuery{Filter: f})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", Collection, err)
	}
	nodes := make([]catalog.Node, 0, len(res.Docs))
	for i := range res.Docs {
		nodes = append(nodes, fromDocument(&res.Docs[i]))
	}
	return nodes, nil
}

func exactly(key, value string) (filter.Expression, error) {
	c, err := filter.NewMatch(key, value)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidNode, err)
	}
	return filter.NewExpression([]filter.Condition{c}, nil, nil)
}

func toDocument(n *catalog.Node) db.Document {
	return db.Document{ID: n.ID(), Fields: map[string]string{
		fieldID:                n.ID(),
		catalog.FieldLevel:     string(n.Level()),
		catalog.FieldParentID:  n.ParentID(),
		catalog.FieldName:      n.Name(),
		catalog.FieldPath:      n.Path(),
		catalog.FieldIconCount: strconv.Itoa(n.IconCount()),
	}}
}

func fromDocument(d *db.Document) catalog.Node {
	f := d.Fields
	count, _ := strconv.Atoi(f[catalog.FieldIconCount])
	return catalog.ReconstructNode(
		d.ID,
		f[catalog.FieldParentID],
		catalog.Level(f[catalog.FieldLevel]),
		f[catalog.FieldName],
		f[catalog.FieldPath],
		count,
		d.Seq,
	)
}

