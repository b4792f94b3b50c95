package db

import (
	"fmt"
	"strconv"
)

// FieldType enumerates supported collection field types.
type FieldType int

const (
	// FieldText is free text matched by patterns.
	FieldText FieldType = iota
	// FieldKeyword is an exact-match field (ids, paths, levels); drivers may index it.
	FieldKeyword
	// FieldNumeric holds a decimal integer encoded as a string.
	FieldNumeric
)

func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "TEXT"
	case FieldKeyword:
		return "KEYWORD"
	case FieldNumeric:
		return "NUMERIC"
	}
	return "UNKNOWN"
}

// Field describes a single field in a collection schema.
type Field struct {
	Name string
	Type FieldType
}

// CollectionSpec is a complete collection definition.
type CollectionSpec struct {
	Name   string
	Fields []Field
}

// Validate checks that the collection definition is well-formed.
func (c *CollectionSpec) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: collection name is required", ErrInvalidSchema)
	}
	if !IsValidIdentifier(c.Name) {
		return fmt.Errorf("%w: collection name contains invalid characters", ErrInvalidSchema)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: at least one field is required", ErrInvalidSchema)
	}

	seen := make(map[string]bool)
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("%w: field name is required at index %s", ErrInvalidSchema, strconv.Itoa(i))
		}
		if !IsValidIdentifier(f.Name) {
			return fmt.Errorf("%w: field name %q contains invalid characters", ErrInvalidSchema, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field name: %s", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

// FieldNames returns schema field names in declaration order.
func (c *CollectionSpec) FieldNames() []string {
	names := make([]string, len(c.Fields))
	for i := range c.Fields {
		names[i] = c.Fields[i].Name
	}
	return names
}

// Projection returns schema field names minus the excluded ones.
func (c *CollectionSpec) Projection(exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	var names []string
	for i := range c.Fields {
		if !skip[c.Fields[i].Name] {
			names = append(names, c.Fields[i].Name)
		}
	}
	return names
}

// FieldsOf returns the names of fields with the given type.
func (c *CollectionSpec) FieldsOf(t FieldType) []string {
	var names []string
	for i := range c.Fields {
		if c.Fields[i].Type == t {
			names = append(names, c.Fields[i].Name)
		}
	}
	return names
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_]+.
// Identifiers end up in SQL expressions and key names, so the set stays narrow.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isAlpha && !isDigit && r != '_' {
			return false
		}
	}
	return true
}
