package db

import "strings"

// CollectionBuilder is a fluent builder for collection definitions.
type CollectionBuilder struct {
	spec CollectionSpec
}

// NewCollection starts building a collection definition.
func NewCollection(name string) *CollectionBuilder {
	return &CollectionBuilder{spec: CollectionSpec{Name: name}}
}

// Text adds TEXT fields.
func (b *CollectionBuilder) Text(names ...string) *CollectionBuilder {
	return b.add(FieldText, names)
}

// Keyword adds KEYWORD fields.
func (b *CollectionBuilder) Keyword(names ...string) *CollectionBuilder {
	return b.add(FieldKeyword, names)
}

// Numeric adds NUMERIC fields.
func (b *CollectionBuilder) Numeric(names ...string) *CollectionBuilder {
	return b.add(FieldNumeric, names)
}

func (b *CollectionBuilder) add(t FieldType, names []string) *CollectionBuilder {
	for _, n := range names {
		b.spec.Fields = append(b.spec.Fields, Field{Name: n, Type: t})
	}
	return b
}

// Build validates and returns the collection definition.
func (b *CollectionBuilder) Build() (*CollectionSpec, error) {
	if err := b.spec.Validate(); err != nil {
		return nil, err
	}
	spec := b.spec
	spec.Fields = append([]Field(nil), b.spec.Fields...)
	return &spec, nil
}

// MustBuild calls Build and panics on error.
func (b *CollectionBuilder) MustBuild() *CollectionSpec {
	spec, err := b.Build()
	if err != nil {
		panic(err)
	}
	return spec
}

// String returns a debug representation of the schema.
func (c *CollectionSpec) String() string {
	parts := []string{"COLLECTION", c.Name, "SCHEMA"}
	for i := range c.Fields {
		parts = append(parts, c.Fields[i].Name, c.Fields[i].Type.String())
	}
	return strings.Join(parts, " ")
}
