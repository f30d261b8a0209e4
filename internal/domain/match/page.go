package match

import "fmt"

// Paging limits. Page size is clamped into [MinPerPage, MaxPerPage].
const (
	MinPerPage     = 5
	MaxPerPage     = 50
	DefaultPerPage = 10
)

// Sort selects the ranking key of the candidate list.
type Sort string

// Supported sort keys.
const (
	SortScore   Sort = "score"
	SortName    Sort = "name"
	SortWebsite Sort = "website"
)

// IsValid reports whether s is a supported sort key.
func (s Sort) IsValid() bool {
	switch s {
	case SortScore, SortName, SortWebsite:
		return true
	}
	return false
}

// Dir is a sort direction.
type Dir string

// Supported sort directions.
const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// IsValid reports whether d is a supported direction.
func (d Dir) IsValid() bool { return d == Asc || d == Desc }

// Page holds the validated ranking and pagination parameters of a request.
// The zero page number means "first"; the page is later clamped to the total
// page count, which is only known after filtering.
type Page struct {
	page     int
	perPage  int
	sort     Sort
	dir      Dir
	minScore float64
	contains string
}

// NewPage validates paging parameters. Defaults: page=1, perPage=10,
// sort=score. The default direction is desc for score and asc for the
// lexicographic sorts.
func NewPage(page, perPage int, sort Sort, dir Dir, minScore float64, contains string) (Page, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage < MinPerPage {
		perPage = MinPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if sort == "" {
		sort = SortScore
	}
	if !sort.IsValid() {
		return Page{}, fmt.Errorf("invalid sort key: %q", sort)
	}
	if dir == "" {
		if sort == SortScore {
			dir = Desc
		} else {
			dir = Asc
		}
	}
	if !dir.IsValid() {
		return Page{}, fmt.Errorf("invalid sort direction: %q", dir)
	}
	if minScore < 0 {
		return Page{}, fmt.Errorf("min_score must be non-negative")
	}
	return Page{
		page:     page,
		perPage:  perPage,
		sort:     sort,
		dir:      dir,
		minScore: minScore,
		contains: contains,
	}, nil
}

// Number returns the requested 1-based page number.
func (p *Page) Number() int { return p.page }

// PerPage returns the clamped page size.
func (p *Page) PerPage() int { return p.perPage }

// Sort returns the ranking key.
func (p *Page) Sort() Sort { return p.sort }

// Dir returns the sort direction.
func (p *Page) Dir() Dir { return p.dir }

// MinScore returns the minimum-score floor (0 disables it).
func (p *Page) MinScore() float64 { return p.minScore }

// Contains returns the case-insensitive substring filter (empty disables it).
func (p *Page) Contains() string { return p.contains }
