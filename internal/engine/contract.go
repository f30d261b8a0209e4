package engine

import (
	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/textindex"
)

// TextSearcher discovers candidate positions by analyzed fuzzy match or by
// token prefix. Search failures are treated as empty results by the engine,
// never as request failures.
type TextSearcher interface {
	Fuzzy(q string, fuzziness, limit int) ([]textindex.Hit, error)
	Prefix(token string, limit int) ([]textindex.Hit, error)
}

// NameSource provides the auxiliary {website, name} dataset backing the
// name-only fallback tier. Entries is load-once: repeated calls return the
// cached dataset.
type NameSource interface {
	Entries() ([]domain.NameEntry, error)
}
