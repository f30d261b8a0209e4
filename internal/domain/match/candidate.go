package match

import "github.com/loupe-search/loupe/internal/domain"

// ScoredCandidate pairs a catalog position with its confidence score. It is
// ephemeral per-request state; positions within one candidate list are
// unique by construction.
type ScoredCandidate struct {
	Index int
	Score float64
}

// Candidate is one resolved entry of the response: the catalog profile plus
// its score.
type Candidate struct {
	Profile domain.CompanyProfile `json:"profile"`
	Score   float64               `json:"score"`
}

// Meta describes the ranking and pagination applied to a result.
type Meta struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	Sort       Sort    `json:"sort"`
	Dir        Dir     `json:"dir"`
	MinScore   float64 `json:"minScore"`
	Contains   string  `json:"contains,omitempty"`
}

// Result is the engine's response: the single best match (nil when the
// filtered list is empty), one page of scored candidates, and paging meta.
// Best is always the top-ranked item of the full filtered list, independent
// of the requested page.
type Result struct {
	Best       *domain.CompanyProfile `json:"best"`
	Candidates []Candidate            `json:"candidates"`
	Meta       Meta                   `json:"meta"`
}
