package catalog

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/iconhub/internal/domain"
)

// Icon is the leaf catalog entity (immutable value object).
// Category, subcategory and tag are denormalized display names, not references.
type Icon struct {
	id          string
	name        string
	filename    string
	path        string
	category    string
	subcategory string
	tag         string
	svg         string
	seq         int64
}

// NewIcon validates and creates an Icon. The ID is derived from the asset path.
func NewIcon(name, filename, path, category, subcategory, tag, svg string) (Icon, error) {
	if name == "" {
		return Icon{}, fmt.Errorf("%w: name is required", domain.ErrInvalidIcon)
	}
	if filename == "" {
		return Icon{}, fmt.Errorf("%w: filename is required", domain.ErrInvalidIcon)
	}
	if !strings.HasPrefix(path, AssetsPrefix) {
		return Icon{}, fmt.Errorf("%w: icon path %q must start with %s", domain.ErrInvalidPath, path, AssetsPrefix)
	}
	if category == "" || subcategory == "" || tag == "" {
		return Icon{}, fmt.Errorf("%w: category, subcategory and tag are required", domain.ErrInvalidIcon)
	}
	return Icon{
		id:          iconID(path),
		name:        name,
		filename:    filename,
		path:        path,
		category:    category,
		subcategory: subcategory,
		tag:         tag,
		svg:         svg,
	}, nil
}

// ReconstructIcon creates an Icon without validation (storage hydration).
func ReconstructIcon(id, name, filename, path, category, subcategory, tag, svg string, seq int64) Icon {
	return Icon{
		id: id, name: name, filename: filename, path: path,
		category: category, subcategory: subcategory, tag: tag,
		svg: svg, seq: seq,
	}
}

// ID returns the icon identifier.
func (i *Icon) ID() string { return i.id }

// Name returns the display name.
func (i *Icon) Name() string { return i.name }

// Filename returns the asset file name.
func (i *Icon) Filename() string { return i.filename }

// Path returns the asset path, e.g. /assets/rounded/linear/home/home.svg.
func (i *Icon) Path() string { return i.path }

// Category returns the category display name.
func (i *Icon) Category() string { return i.category }

// Subcategory returns the subcategory display name.
func (i *Icon) Subcategory() string { return i.subcategory }

// Tag returns the tag display name.
func (i *Icon) Tag() string { return i.tag }

// SVG returns the raw markup. Empty for lean projections; this does not
// mean the icon has no content.
func (i *Icon) SVG() string { return i.svg }

// Seq returns the store insertion sequence.
func (i *Icon) Seq() int64 { return i.seq }

// GithubPath returns the raw asset URL under base.
func (i *Icon) GithubPath(base string) string { return GithubURL(base, i.path) }
