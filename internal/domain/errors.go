package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPath signals a malformed catalog or asset path.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidNode signals an invalid category, subcategory or tag definition.
	ErrInvalidNode = errors.New("invalid node")
	// ErrInvalidIcon signals an invalid icon definition.
	ErrInvalidIcon = errors.New("invalid icon")
	// ErrStoreUnavailable signals that the entity store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
