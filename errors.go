package loupe

import "github.com/loupe-search/loupe/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery       = domain.ErrEmptyQuery
	ErrCatalogNotLoaded = domain.ErrCatalogNotLoaded
	ErrNamesUnavailable = domain.ErrNamesUnavailable
)
