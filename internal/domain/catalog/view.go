package catalog

// Summary is a metadata-only list entry. Parent name fields are set for
// subcategories and tags only.
type Summary struct {
	Name            string
	Path            string
	IconCount       int
	CategoryName    string
	SubcategoryName string
}

// TotalIcons sums IconCount across entries.
func TotalIcons(entries []Summary) int {
	total := 0
	for _, e := range entries {
		total += e.IconCount
	}
	return total
}

// TagView is a tag inside a category tree.
type TagView struct {
	Name      string
	Path      string
	IconCount int
	Icons     []Icon
}

// SubcategoryView is a subcategory inside a category tree.
type SubcategoryView struct {
	Name      string
	Path      string
	IconCount int
	Tags      []TagView
}

// CategoryView is the root of a category tree.
type CategoryView struct {
	Name          string
	Path          string
	IconCount     int
	Subcategories []SubcategoryView
}

// TreeIconCount sums IconCount across categories.
func TreeIconCount(tree []CategoryView) int {
	total := 0
	for _, c := range tree {
		total += c.IconCount
	}
	return total
}
