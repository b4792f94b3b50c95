package chi

import (
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/result"
	exportuc "github.com/kailas-cloud/iconhub/internal/usecase/export"
	healthuc "github.com/kailas-cloud/iconhub/internal/usecase/health"
)

type errorResponse struct {
	Error string `json:"error"`
}

type iconResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	Path        string `json:"path"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Tag         string `json:"tag"`
	SVG         string `json:"svg,omitempty"`
	GithubPath  string `json:"githubPath"`
}

type summaryResponse struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	IconCount       int    `json:"iconCount"`
	CategoryName    string `json:"categoryName,omitempty"`
	SubcategoryName string `json:"subcategoryName,omitempty"`
}

type paginationResponse struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// offsetPaginationResponse is the window descriptor of the offset-based icon listing.
type offsetPaginationResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type searchResponse struct {
	Icons      []iconResponse `json:"icons"`
	TotalCount int            `json:"totalCount"`
	Categories []string       `json:"categories"`
	Tags       []string       `json:"tags"`
	Pagination any            `json:"pagination,omitempty"`
}

type categoriesResponse struct {
	Categories      []summaryResponse `json:"categories"`
	TotalCategories int               `json:"totalCategories"`
	TotalIcons      int               `json:"totalIcons"`
}

type subcategoriesResponse struct {
	Subcategories      []summaryResponse `json:"subcategories"`
	TotalSubcategories int               `json:"totalSubcategories"`
	CategoryName       string            `json:"categoryName,omitempty"`
}

type tagsResponse struct {
	Tags            []summaryResponse `json:"tags"`
	TotalTags       int               `json:"totalTags"`
	CategoryName    string            `json:"categoryName,omitempty"`
	SubcategoryName string            `json:"subcategoryName,omitempty"`
}

type tagTreeResponse struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	IconCount int            `json:"iconCount"`
	Icons     []iconResponse `json:"icons"`
}

type subcategoryTreeResponse struct {
	Name      string            `json:"name"`
	Path      string            `json:"path"`
	IconCount int               `json:"iconCount"`
	Tags      []tagTreeResponse `json:"tags"`
}

type categoryTreeResponse struct {
	Name          string                    `json:"name"`
	Path          string                    `json:"path"`
	IconCount     int                       `json:"iconCount"`
	Subcategories []subcategoryTreeResponse `json:"subcategories"`
}

type treeResponse struct {
	Categories      []categoryTreeResponse `json:"categories"`
	TotalCategories int                    `json:"totalCategories"`
	TotalIcons      int                    `json:"totalIcons"`
}

type browseResponse struct {
	Category    *summaryResponse `json:"category,omitempty"`
	Subcategory *summaryResponse `json:"subcategory,omitempty"`
	Tag         *summaryResponse `json:"tag,omitempty"`
	searchResponse
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Icons  *int              `json:"icons,omitempty"`
}

type exportResultResponse struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

type exportResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Results []exportResultResponse `json:"results"`
}

func iconToResponse(ic *domcat.Icon, assetsBase string) iconResponse {
	return iconResponse{
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

func iconsToResponse(icons []domcat.Icon, assetsBase string) []iconResponse {
	out := make([]iconResponse, len(icons))
	for i := range icons {
		out[i] = iconToResponse(&icons[i], assetsBase)
	}
	return out
}

func summaryToResponse(s domcat.Summary) summaryResponse {
	return summaryResponse{
		Name:            s.Name,
		Path:            s.Path,
		IconCount:       s.IconCount,
		CategoryName:    s.CategoryName,
		SubcategoryName: s.SubcategoryName,
	}
}

func summariesToResponse(entries []domcat.Summary) []summaryResponse {
	out := make([]summaryResponse, len(entries))
	for i, e := range entries {
		out[i] = summaryToResponse(e)
	}
	return out
}

func nodeSummary(n *domcat.Node) *summaryResponse {
	s := summaryToResponse(n.Summary())
	return &s
}

func searchToResponse(r *result.Result, assetsBase string) searchResponse {
	resp := searchResponse{
		Icons:      iconsToResponse(r.Icons, assetsBase),
		TotalCount: r.TotalCount,
		Categories: r.Categories,
		Tags:       r.Tags,
	}
	if p := r.Pagination; p != nil {
		resp.Pagination = paginationResponse{
			Limit:      p.Limit,
			Offset:     p.Offset,
			Page:       p.Page,
			TotalPages: p.TotalPages,
			HasMore:    p.HasMore,
		}
	}
	return resp
}

func categoriesToResponse(entries []domcat.Summary) categoriesResponse {
	return categoriesResponse{
		Categories:      summariesToResponse(entries),
		TotalCategories: len(entries),
		TotalIcons:      domcat.TotalIcons(entries),
	}
}

func treeToResponse(tree []domcat.CategoryView, assetsBase string) treeResponse {
	cats := make([]categoryTreeResponse, len(tree))
	for i, c := range tree {
		subs := make([]subcategoryTreeResponse, len(c.Subcategories))
		for j, s := range c.Subcategories {
			tags := make([]tagTreeResponse, len(s.Tags))
			for k, tg := range s.Tags {
				tags[k] = tagTreeResponse{
					Name:      tg.Name,
					Path:      tg.Path,
					IconCount: tg.IconCount,
					Icons:     iconsToResponse(tg.Icons, assetsBase),
				}
			}
			subs[j] = subcategoryTreeResponse{Name: s.Name, Path: s.Path, IconCount: s.IconCount, Tags: tags}
		}
		cats[i] = categoryTreeResponse{Name: c.Name, Path: c.Path, IconCount: c.IconCount, Subcategories: subs}
	}
	return treeResponse{
		Categories:      cats,
		TotalCategories: len(tree),
		TotalIcons:      domcat.TreeIconCount(tree),
	}
}

func healthToResponse(r *healthuc.Report) healthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	resp := healthResponse{Status: string(r.Status), Checks: checks}
	if r.Icons >= 0 {
		n := r.Icons
		resp.Icons = &n
	}
	return resp
}

func exportToResponse(r *exportuc.Report) exportResponse {
	results := make([]exportResultResponse, len(r.Results))
	for i, c := range r.Results {
		results[i] = exportResultResponse{Collection: c.Collection, Count: c.Count, Status: string(c.Status)}
		if c.Err != nil {
			results[i].Error = "export failed"
		}
	}
	resp := exportResponse{Success: r.Success(), Results: results}
	if !resp.Success {
		resp.Message = "one or more collections failed to export"
	}
	return resp
}
