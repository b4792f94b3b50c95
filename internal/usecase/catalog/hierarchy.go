package catalog

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/iconhub/internal/domain"
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
	"github.com/kailas-cloud/iconhub/internal/slug"
)

// treeConcurrency bounds parallel subtree loads.
const treeConcurrency = 4

// LightCategories lists categories without descending into children.
func (s *Service) LightCategories(ctx context.Context) []domcat.Summary {
	cats, err := s.nodes.List(ctx, domcat.LevelCategory)
	if err != nil {
		s.fallback(ctx, "light_categories", err)
		return []domcat.Summary{}
	}
	return summaries(cats)
}

// LightSubcategories lists subcategories, optionally of one category.
// An unknown category yields an empty list.
func (s *Service) LightSubcategories(ctx context.Context, category string) []domcat.Summary {
	const op = "light_subcategories"
	if category == "" {
		subs, err := s.nodes.List(ctx, domcat.LevelSubcategory)
		if err != nil {
			s.fallback(ctx, op, err)
			return []domcat.Summary{}
		}
		return summaries(subs)
	}

	cat, ok := s.lookup(ctx, op, domcat.LevelCategory, "", category)
	if !ok {
		return []domcat.Summary{}
	}
	subs, err := s.nodes.ChildrenOf(ctx, cat.ID())
	if err != nil {
		s.fallback(ctx, op, err)
		return []domcat.Summary{}
	}
	return summaries(subs)
}

// LightTags lists tags filtered by any combination of category and
// subcategory. A subcategory without a category matches every subcategory
// of that name.
func (s *Service) LightTags(ctx context.Context, category, subcategory string) []domcat.Summary {
	const op = "light_tags"
	if category == "" && subcategory == "" {
		tags, err := s.nodes.List(ctx, domcat.LevelTag)
		if err != nil {
			s.fallback(ctx, op, err)
			return []domcat.Summary{}
		}
		return summaries(tags)
	}

	parents, err := s.tagParents(ctx, category, subcategory)
	if err != nil {
		s.fallback(ctx, op, err)
		return []domcat.Summary{}
	}

	out := []domcat.Summary{}
	for i := range parents {
		tags, err := s.nodes.ChildrenOf(ctx, parents[i].ID())
		if err != nil {
			s.fallback(ctx, op, err)
			return []domcat.Summary{}
		}
		out = append(out, summaries(tags)...)
	}
	return out
}

// tagParents resolves the subcategories whose tags LightTags returns.
func (s *Service) tagParents(ctx context.Context, category, subcategory string) ([]domcat.Node, error) {
	var subs []domcat.Node
	if category != "" {
		cat, err := s.nodes.FindByName(ctx, domcat.LevelCategory, "", category)
		if err != nil {
			return nil, ignoreNotFound(err)
		}
		if subs, err = s.nodes.ChildrenOf(ctx, cat.ID()); err != nil {
			return nil, err
		}
	} else {
		var err error
		if subs, err = s.nodes.List(ctx, domcat.LevelSubcategory); err != nil {
			return nil, err
		}
	}

	if subcategory == "" {
		return subs, nil
	}
	matched := subs[:0:0]
	for i := range subs {
		if nameMatches(subs[i].Name(), subcategory) {
			matched = append(matched, subs[i])
		}
	}
	return matched, nil
}

// TreeOptions selects what Tree loads.
type TreeOptions struct {
	// WithIcons fills every tag with its icons, SVG included, and recomputes
	// counts from them.
	WithIcons bool
}

// Tree builds the category → subcategory → tag hierarchy.
func (s *Service) Tree(ctx context.Context, opts TreeOptions) []domcat.CategoryView {
	const op = "tree"
	cats, err := s.nodes.List(ctx, domcat.LevelCategory)
	if err != nil {
		s.fallback(ctx, op, err)
		return []domcat.CategoryView{}
	}

	var byTag map[string][]domcat.Icon
	if opts.WithIcons {
		page, err := s.icons.Find(ctx, filter.Expression{}, domcat.FindOptions{WithSVG: true})
		if err != nil {
			s.fallback(ctx, op, err)
			return []domcat.CategoryView{}
		}
		byTag = groupByTag(page.Icons)
	}

	tree := make([]domcat.CategoryView, len(cats))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(treeConcurrency)
	for i := range cats {
		g.Go(func() error {
			view, err := s.categoryView(gctx, &cats[i], byTag)
			if err != nil {
				return err
			}
			tree[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.fallback(ctx, op, err)
		return []domcat.CategoryView{}
	}
	return tree
}

// CategoryStructure returns the hierarchy with stored counts and no icons.
func (s *Service) CategoryStructure(ctx context.Context) []domcat.CategoryView {
	return s.Tree(ctx, TreeOptions{})
}

// Categories returns the hierarchy with icons populated.
func (s *Service) Categories(ctx context.Context) []domcat.CategoryView {
	return s.Tree(ctx, TreeOptions{WithIcons: true})
}

func (s *Service) categoryView(
	ctx context.Context, cat *domcat.Node, byTag map[string][]domcat.Icon,
) (domcat.CategoryView, error) {
	subs, err := s.nodes.ChildrenOf(ctx, cat.ID())
	if err != nil {
		return domcat.CategoryView{}, err
	}

	view := domcat.CategoryView{
		Name:          cat.Name(),
		Path:          cat.Path(),
		IconCount:     cat.IconCount(),
		Subcategories: make([]domcat.SubcategoryView, 0, len(subs)),
	}
	if byTag != nil {
		view.IconCount = 0
	}

	for i := range subs {
		sub := &subs[i]
		tags, err := s.nodes.ChildrenOf(ctx, sub.ID())
		if err != nil {
			return domcat.CategoryView{}, err
		}
		sv := domcat.SubcategoryView{
			Name:      sub.Name(),
			Path:      sub.Path(),
			IconCount: sub.IconCount(),
			Tags:      make([]domcat.TagView, 0, len(tags)),
		}
		if byTag != nil {
			sv.IconCount = 0
		}

		for j := range tags {
			tag := &tags[j]
			tv := domcat.TagView{
				Name:      tag.Name(),
				Path:      tag.Path(),
				IconCount: tag.IconCount(),
				Icons:     []domcat.Icon{},
			}
			if byTag != nil {
				if icons := byTag[tagKey(cat.Name(), sub.Name(), tag.Name())]; icons != nil {
					tv.Icons = icons
				}
				tv.IconCount = len(tv.Icons)
				sv.IconCount += tv.IconCount
			}
			sv.Tags = append(sv.Tags, tv)
		}
		if byTag != nil {
			view.IconCount += sv.IconCount
		}
		view.Subcategories = append(view.Subcategories, sv)
	}
	return view, nil
}

// ResolveCategory returns the category named name.
func (s *Service) ResolveCategory(ctx context.Context, name string) (domcat.Node, error) {
	return s.resolve(ctx, "resolve_category", domcat.LevelCategory, "", name)
}

// ResolveSubcategory returns the subcategory sub inside category cat.
func (s *Service) ResolveSubcategory(ctx context.Context, cat, sub string) (domcat.Node, error) {
	parent, err := s.ResolveCategory(ctx, cat)
	if err != nil {
		return domcat.Node{}, err
	}
	return s.resolve(ctx, "resolve_subcategory", domcat.LevelSubcategory, parent.ID(), sub)
}

// ResolveTag returns the first tag named name across all subcategories.
func (s *Service) ResolveTag(ctx context.Context, name string) (domcat.Node, error) {
	return s.resolve(ctx, "resolve_tag", domcat.LevelTag, "", name)
}

func (s *Service) resolve(
	ctx context.Context, op string, level domcat.Level, parentID, name string,
) (domcat.Node, error) {
	n, ok := s.lookup(ctx, op, level, parentID, name)
	if !ok {
		return domcat.Node{}, domain.ErrNotFound
	}
	return n, nil
}

// lookup finds a node by name, absorbing store errors.
func (s *Service) lookup(
	ctx context.Context, op string, level domcat.Level, parentID, name string,
) (domcat.Node, bool) {
	n, err := s.nodes.FindByName(ctx, level, parentID, name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.fallback(ctx, op, err)
		}
		return domcat.Node{}, false
	}
	return n, true
}

func summaries(nodes []domcat.Node) []domcat.Summary {
	out := make([]domcat.Summary, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Summary()
	}
	return out
}

func nameMatches(name, query string) bool {
	return strings.EqualFold(name, query) || slug.Equal(name, query)
}

func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func tagKey(category, subcategory, tag string) string {
	return strings.ToLower(category + "\x00" + subcategory + "\x00" + tag)
}

func groupByTag(icons []domcat.Icon) map[string][]domcat.Icon {
	out := make(map[string][]domcat.Icon)
	for i := range icons {
		ic := &icons[i]
		k := tagKey(ic.Category(), ic.Subcategory(), ic.Tag())
		out[k] = append(out[k], *ic)
	}
	return out
}
