package iconhub

// Icon is one SVG icon. SVG is empty for lean results.
type Icon struct {
	ID          string
	Name        string
	Filename    string
	Path        string
	Category    string
	Subcategory string
	Tag         string
	SVG         string
	GithubPath  string
}

// Query narrows a search. Empty fields match everything.
type Query struct {
	Text        string
	Category    string
	Subcategory string
	Tag         string
}

// Page selects a FastSearch window. Zero values fall back to defaults.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// Pagination describes the page a result was cut from.
type Pagination struct {
	Page       int
	Limit      int
	Offset     int
	TotalPages int
	HasMore    bool
}

// SearchResult is the outcome of Search and FastSearch.
type SearchResult struct {
	Icons      []Icon
	TotalCount int
	Categories []string
	Tags       []string
	// Pagination is nil for unpaged searches.
	Pagination *Pagination
}

// Summary is a category, subcategory or tag without its icons.
type Summary struct {
	Name            string
	Path            string
	IconCount       int
	CategoryName    string
	SubcategoryName string
}

// TagNode is a tag inside a category tree.
type TagNode struct {
	Name      string
	Path      string
	IconCount int
	Icons     []Icon
}

// SubcategoryNode is a subcategory inside a category tree.
type SubcategoryNode struct {
	Name      string
	Path      string
	IconCount int
	Tags      []TagNode
}

// CategoryNode is the root of a category tree.
type CategoryNode struct {
	Name          string
	Path          string
	IconCount     int
	Subcategories []SubcategoryNode
}

// ImportOptions controls an import run.
type ImportOptions struct {
	// Root is the directory holding category folders. Default: "assets".
	Root string
	// Reset clears the catalog first.
	Reset bool
}

// ImportReport counts what an import wrote and skipped.
type ImportReport struct {
	Categories    int
	Subcategories int
	Tags          int
	Icons         int
	Skipped       int
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"/"skipped"
	// Icons is the catalog size, -1 when unknown.
	Icons int
}
