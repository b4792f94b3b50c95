package icon

import (
	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain/catalog"
)

func toDocument(ic *catalog.Icon) db.Document {
	fields := map[string]string{
		catalog.FieldName:        ic.Name(),
		catalog.FieldFilename:    ic.Filename(),
		catalog.FieldPath:        ic.Path(),
		catalog.FieldCategory:    ic.Category(),
		catalog.FieldSubcategory: ic.Subcategory(),
		catalog.FieldTag:         ic.Tag(),
	}
	if ic.SVG() != "" {
		fields[catalog.FieldSVG] = ic.SVG()
	}
	return db.Document{ID: ic.ID(), Fields: fields}
}

func fromDocument(d *db.Document) catalog.Icon {
	f := d.Fields
	return catalog.ReconstructIcon(
		d.ID,
		f[catalog.FieldName],
		f[catalog.FieldFilename],
		f[catalog.FieldPath],
		f[catalog.FieldCategory],
		f[catalog.FieldSubcategory],
		f[catalog.FieldTag],
		f[catalog.FieldSVG],
		d.Seq,
	)
}
