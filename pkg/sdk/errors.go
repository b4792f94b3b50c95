package iconhub

import "github.com/kailas-cloud/iconhub/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidPath      = domain.ErrInvalidPath
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
