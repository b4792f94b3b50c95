package chi

import (
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/iconhub/internal/domain/search/request"
)

// intQuery binds an optional integer query parameter.
// Missing or malformed values yield 0 so callers fall back to defaults.
func intQuery(q url.Values, name string) int {
	var v int
	if err := runtime.BindQueryParameter("form", true, false, name, first(q, name), &v); err != nil {
		return 0
	}
	return v
}

// stringQuery binds an optional string query parameter.
func stringQuery(q url.Values, name string) string {
	var v string
	if err := runtime.BindQueryParameter("form", true, false, name, first(q, name), &v); err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// first keeps only the first value of name; repeated parameters
// would otherwise fail to bind.
func first(q url.Values, name string) url.Values {
	vs := q[name]
	if len(vs) <= 1 {
		return q
	}
	return url.Values{name: vs[:1]}
}

// searchQuery reads q, category, subcategory and tag.
func searchQuery(q url.Values) request.Request {
	return request.New(
		stringQuery(q, "q"),
		stringQuery(q, "category"),
		stringQuery(q, "subcategory"),
		stringQuery(q, "tag"),
	)
}

// pageQuery reads page, limit and offset within the given bounds.
func pageQuery(q url.Values, b request.Bounds) request.Page {
	return request.NewPage(intQuery(q, "page"), intQuery(q, "limit"), intQuery(q, "offset"), b)
}
