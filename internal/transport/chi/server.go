package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/iconhub/internal/domain"
	domcat "github.com/kailas-cloud/iconhub/internal/domain/catalog"
	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
	"github.com/kailas-cloud/iconhub/internal/logger"
	cataloguc "github.com/kailas-cloud/iconhub/internal/usecase/catalog"
	exportuc "github.com/kailas-cloud/iconhub/internal/usecase/export"
	healthuc "github.com/kailas-cloud/iconhub/internal/usecase/health"
)

// dbIconsDefaultLimit is the window size of /api/db/icons.
const dbIconsDefaultLimit = 100

// svgCacheControl lets browsers and CDNs keep icon markup for a day.
const svgCacheControl = "public, max-age=86400"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the catalog HTTP API.
type Server struct {
	catalog       *cataloguc.Service
	health        *healthuc.Service
	export        *exportuc.Service
	exportKeys    []string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. export can be nil.
func NewServer(
	catalog *cataloguc.Service,
	health *healthuc.Service,
	export *exportuc.Service,
	exportKeys []string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:    catalog,
		health:     health,
		export:     export,
		exportKeys: exportKeys,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not found"),
		sentinelHandler(domain.ErrInvalidPath, http.StatusBadRequest, "invalid path"),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.ListCategories)
		r.Get("/icons", s.SearchIcons)

		r.Route("/db", func(r chi.Router) {
			r.Get("/icons", s.ListDBIcons)
			r.Get("/categories", s.ListDBCategories)
			r.Get("/structure", s.GetStructure)
			r.Get("/tree", s.GetTree)
			r.Get("/svg/*", s.GetSVG)
			r.With(ExportKeyMiddleware(s.exportKeys)).Get("/export", s.Export)
		})

		r.Route("/browse", func(r chi.Router) {
			r.Get("/tag/{tag}", s.BrowseTag)
			r.Get("/{category}", s.BrowseCategory)
			r.Get("/{category}/{subcategory}", s.BrowseSubcategory)
		})
	})
}

// ListCategories handles GET /api/categories.
// With ?category= it drills down into that category's subcategories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	if cat := stringQuery(r.URL.Query(), "category"); cat != "" {
		subs := s.catalog.LightSubcategories(r.Context(), cat)
		writeJSON(w, http.StatusOK, subcategoriesResponse{
			Subcategories:      summariesToResponse(subs),
			TotalSubcategories: len(subs),
			CategoryName:       cat,
		})
		return
	}
	writeJSON(w, http.StatusOK, categoriesToResponse(s.catalog.LightCategories(r.Context())))
}

// SearchIcons handles GET /api/icons.
func (s *Server) SearchIcons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := s.catalog.FastSearch(r.Context(), searchQuery(q), pageQuery(q, s.catalog.Bounds()))
	writeJSON(w, http.StatusOK, searchToResponse(&res, s.catalog.AssetsBaseURL()))
}

// ListDBIcons handles GET /api/db/icons: a full search cut to [offset, offset+limit).
func (s *Server) ListDBIcons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intQuery(q, "limit")
	if limit <= 0 {
		limit = dbIconsDefaultLimit
	}
	if maxLimit := s.catalog.Bounds().MaxLimit; limit > maxLimit {
		limit = maxLimit
	}
	offset := max(intQuery(q, "offset"), 0)

	res := s.catalog.Search(r.Context(), searchQuery(q))
	start := min(offset, len(res.Icons))
	end := min(start+limit, len(res.Icons))
	res.Icons = res.Icons[start:end]

	resp := searchToResponse(&res, s.catalog.AssetsBaseURL())
	resp.Pagination = offsetPaginationResponse{
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < res.TotalCount,
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListDBCategories handles GET /api/db/categories.
func (s *Server) ListDBCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoriesToResponse(s.catalog.LightCategories(r.Context())))
}

// GetStructure handles GET /api/db/structure?type=.
func (s *Server) GetStructure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat := stringQuery(q, "category")
	sub := stringQuery(q, "subcategory")

	switch stringQuery(q, "type") {
	case "categories":
		writeJSON(w, http.StatusOK, categoriesToResponse(s.catalog.LightCategories(r.Context())))
	case "subcategories":
		subs := s.catalog.LightSubcategories(r.Context(), cat)
		writeJSON(w, http.StatusOK, subcategoriesResponse{
			Subcategories:      summariesToResponse(subs),
			TotalSubcategories: len(subs),
			CategoryName:       cat,
		})
	case "tags":
		tags := s.catalog.LightTags(r.Context(), cat, sub)
		writeJSON(w, http.StatusOK, tagsResponse{
			Tags:            summariesToResponse(tags),
			TotalTags:       len(tags),
			CategoryName:    cat,
			SubcategoryName: sub,
		})
	default:
		tree := s.catalog.CategoryStructure(r.Context())
		writeJSON(w, http.StatusOK, treeToResponse(tree, s.catalog.AssetsBaseURL()))
	}
}

// GetTree handles GET /api/db/tree: the hierarchy with icons.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	tree := s.catalog.Categories(r.Context())
	writeJSON(w, http.StatusOK, treeToResponse(tree, s.catalog.AssetsBaseURL()))
}

// GetSVG handles GET /api/db/svg/*.
func (s *Server) GetSVG(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(chi.URLParam(r, "*"), "/")
	if rest == "" {
		writeError(w, http.StatusNotFound, "SVG not found in database")
		return
	}

	svg, err := s.catalog.IconSVG(r.Context(), domcat.AssetPath(strings.Split(rest, "/")...))
	if err != nil {
		writeError(w, http.StatusNotFound, "SVG not found in database")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", svgCacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}

// BrowseCategory handles GET /api/browse/{category}.
func (s *Server) BrowseCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := s.catalog.ResolveCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	resp := s.browse(r, request.New("", cat.Name(), "", ""))
	resp.Category = nodeSummary(&cat)
	writeJSON(w, http.StatusOK, resp)
}

// BrowseSubcategory handles GET /api/browse/{category}/{subcategory}.
func (s *Server) BrowseSubcategory(w http.ResponseWriter, r *http.Request) {
	cat, err := s.catalog.ResolveCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	sub, err := s.catalog.ResolveSubcategory(r.Context(), cat.Name(), chi.URLParam(r, "subcategory"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	resp := s.browse(r, request.New("", cat.Name(), sub.Name(), ""))
	resp.Category = nodeSummary(&cat)
	resp.Subcategory = nodeSummary(&sub)
	writeJSON(w, http.StatusOK, resp)
}

// BrowseTag handles GET /api/browse/tag/{tag}.
func (s *Server) BrowseTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.catalog.ResolveTag(r.Context(), chi.URLParam(r, "tag"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	resp := s.browse(r, request.New("", "", "", tag.Name()))
	resp.Tag = nodeSummary(&tag)
	writeJSON(w, http.StatusOK, resp)
}

// browse runs a paged search narrowed by the resolved node and the free-text query.
func (s *Server) browse(r *http.Request, scope request.Request) browseResponse {
	q := r.URL.Query()
	req := request.New(stringQuery(q, "q"), scope.Category(), scope.Subcategory(), scope.Tag())
	res := s.catalog.FastSearch(r.Context(), req, pageQuery(q, s.catalog.Bounds()))
	return browseResponse{searchResponse: searchToResponse(&res, s.catalog.AssetsBaseURL())}
}

// Export handles GET /api/db/export.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	if s.export == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	rep, err := s.export.Export(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, exportResponse{
			Success: false,
			Message: "export target unavailable",
			Results: []exportResultResponse{},
		})
		return
	}
	resp := exportToResponse(&rep)
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToResponse(&report))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
