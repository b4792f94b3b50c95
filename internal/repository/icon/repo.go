package icon

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain"
	"github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// Collection is the store collection holding icons.
const Collection = "icons"

// store is the consumer interface for icons (ISP).
type store interface {
	EnsureCollection(ctx context.Context, spec *db.CollectionSpec) error
	Insert(ctx context.Context, collection string, docs []db.Document) error
	Find(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error)
	FindOne(ctx context.Context, collection string, f filter.Expression) (*db.Document, error)
	Count(ctx context.Context, collection string, f filter.Expression) (int, error)
	DeleteAll(ctx context.Context, collection string) error
}

// Repo implements usecase/catalog.IconRepository.
type Repo struct {
	store store
}

// New creates an icon repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Schema returns the icon collection definition.
func Schema() *db.CollectionSpec {
	return db.NewCollection(Collection).
		Text(catalog.FieldName, catalog.FieldCategory, catalog.FieldSubcategory, catalog.FieldTag).
		Keyword(catalog.FieldFilename, catalog.FieldPath).
		Text(catalog.FieldSVG).
		MustBuild()
}

// Init ensures the collection exists.
func (r *Repo) Init(ctx context.Context) error {
	if err := r.store.EnsureCollection(ctx, Schema()); err != nil {
		return fmt.Errorf("ensure %s: %w", Collection, err)
	}
	return nil
}

// Find returns icons matching f in insertion order.
func (r *Repo) Find(ctx context.Context, f filter.Expression, opts catalog.FindOptions) (catalog.IconPage, error) {
	q := &db.FindQuery{
		Filter: f,
		Offset: opts.Offset,
		Limit:  opts.Limit,
		Facets: []string{catalog.FieldCategory, catalog.FieldTag},
	}
	if !opts.WithSVG {
		q.Exclude = []string{catalog.FieldSVG}
	}

	res, err := r.store.Find(ctx, Collection, q)
	if err != nil {
		return catalog.IconPage{}, fmt.Errorf("find %s: %w", Collection, err)
	}

	icons := make([]catalog.Icon, 0, len(res.Docs))
	for i := range res.Docs {
		icons = append(icons, fromDocument(&res.Docs[i]))
	}
	return catalog.IconPage{
		Icons:      icons,
		Total:      res.Total,
		Categories: nonNil(res.Facets[catalog.FieldCategory]),
		Tags:       nonNil(res.Facets[catalog.FieldTag]),
	}, nil
}

// ByPath returns the icon stored under an exact asset path, SVG included.
func (r *Repo) ByPath(ctx context.Context, path string) (catalog.Icon, error) {
	m, err := filter.NewMatch(catalog.FieldPath, path)
	if err != nil {
		return catalog.Icon{}, fmt.Errorf("%w: %w", domain.ErrInvalidPath, err)
	}
	f, err := filter.NewExpression([]filter.Condition{m}, nil, nil)
	if err != nil {
		return catalog.Icon{}, err
	}

	doc, err := r.store.FindOne(ctx, Collection, f)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return catalog.Icon{}, domain.ErrNotFound
		}
		return catalog.Icon{}, fmt.Errorf("find one %s %s: %w", Collection, path, err)
	}
	return fromDocument(doc), nil
}

// Upsert stores icons keyed by their ID.
func (r *Repo) Upsert(ctx context.Context, icons []catalog.Icon) error {
	if len(icons) == 0 {
		return nil
	}
	docs := make([]db.Document, len(icons))
	for i := range icons {
		docs[i] = toDocument(&icons[i])
	}
	if err := r.store.Insert(ctx, Collection, docs); err != nil {
		return fmt.Errorf("insert %s: %w", Collection, err)
	}
	return nil
}

// Reset removes every icon.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, Collection); err != nil {
		return fmt.Errorf("delete all %s: %w", Collection, err)
	}
	return nil
}

// Count returns the number of stored icons.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx, Collection, filter.Expression{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", Collection, err)
	}
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
