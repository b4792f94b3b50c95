package catalog

// FindOptions controls projection and windowing of an icon lookup.
type FindOptions struct {
	WithSVG bool
	Offset  int
	// Limit of 0 returns every match after Offset.
	Limit int
}

// IconPage is one window of matching icons plus facets over the full match set.
type IconPage struct {
	Icons      []Icon
	Total      int
	Categories []string
	Tags       []string
}
