package catalog

// Stored field names shared by repositories and query builders.
const (
	FieldName        = "name"
	FieldFilename    = "filename"
	FieldPath        = "path"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldTag         = "tag"
	FieldSVG         = "svg"

	FieldLevel     = "level"
	FieldParentID  = "parentId"
	FieldIconCount = "iconCount"
)
