package iconhub

import (
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
	"github.com/kailas-cloud/iconhub/internal/domain/search/result"
	ingestuc "github.com/kailas-cloud/iconhub/internal/usecase/ingest"
)

func toRequest(q Query) request.Request {
	return request.New(q.Text, q.Category, q.Subcategory, q.Tag)
}

func toPage(p Page, b request.Bounds) request.Page {
	return request.NewPage(p.Page, p.Limit, p.Offset, b)
}

func fromIcon(ic *domcat.Icon, assetsBase string) Icon {
	return Icon{
		ID:          ic.ID(),
		Name:        ic.Name(),
		Filename:    ic.Filename(),
		Path:        ic.Path(),
		Category:    ic.Category(),
		Subcategory: ic.Subcategory(),
		Tag:         ic.Tag(),
		SVG:         ic.SVG(),
		GithubPath:  ic.GithubPath(assetsBase),
	}
}

func fromIcons(icons []domcat.Icon, assetsBase string) []Icon {
	out := make([]Icon, len(icons))
	for i := range icons {
		out[i] = fromIcon(&icons[i], assetsBase)
	}
	return out
}

func fromResult(r *result.Result, assetsBase string) SearchResult {
	res := SearchResult{
		Icons:      fromIcons(r.Icons, assetsBase),
		TotalCount: r.TotalCount,
		Categories: r.Categories,
		Tags:       r.Tags,
	}
	if p := r.Pagination; p != nil {
		res.Pagination = &Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Offset:     p.Offset,
			TotalPages: p.TotalPages,
			HasMore:    p.HasMore,
		}
	}
	return res
}

func fromSummaries(entries []domcat.Summary) []Summary {
	out := make([]Summary, len(entries))
	for i, e := range entries {
		out[i] = Summary{
			Name:            e.Name,
			Path:            e.Path,
			IconCount:       e.IconCount,
			CategoryName:    e.CategoryName,
			SubcategoryName: e.SubcategoryName,
		}
	}
	return out
}

func fromTree(tree []domcat.CategoryView, assetsBase string) []CategoryNode {
	out := make([]CategoryNode, len(tree))
	for i, c := range tree {
		subs := make([]SubcategoryNode, len(c.Subcategories))
		for j, s := range c.Subcategories {
			tags := make([]TagNode, len(s.Tags))
			for k, tg := range s.Tags {
				tags[k] = TagNode{
					Name:      tg.Name,
					Path:      tg.Path,
					IconCount: tg.IconCount,
					Icons:     fromIcons(tg.Icons, assetsBase),
				}
			}
			subs[j] = SubcategoryNode{Name: s.Name, Path: s.Path, IconCount: s.IconCount, Tags: tags}
		}
		out[i] = CategoryNode{Name: c.Name, Path: c.Path, IconCount: c.IconCount, Subcategories: subs}
	}
	return out
}

func fromImportReport(r ingestuc.Report) ImportReport {
	return ImportReport{
		Categories:    r.Categories,
		Subcategories: r.Subcategories,
		Tags:          r.Tags,
		Icons:         r.Icons,
		Skipped:       r.Skipped,
	}
}
