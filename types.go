package loupe

import (
	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
)

// Profile is a catalog company record.
type Profile struct {
	Website string
	Name    string
	Phones  []string
	Social  map[string][]string
	Address string
}

// Candidate is one ranked match with its confidence score.
type Candidate struct {
	Profile Profile
	Score   float64
}

// Meta describes the ranking and pagination applied to a result.
type Meta struct {
	Total      int
	TotalPages int
	Page       int
	PerPage    int
	Sort       string
	Dir        string
}

// Result is one resolved match query: the single best candidate (nil when
// nothing survived filtering), one page of candidates, and paging metadata.
type Result struct {
	Best       *Profile
	Candidates []Candidate
	Meta       Meta
}

// Sort keys for the candidate ranking.
const (
	SortScore   = string(match.SortScore)
	SortName    = string(match.SortName)
	SortWebsite = string(match.SortWebsite)
)

// Sort directions.
const (
	Asc  = string(match.Asc)
	Desc = string(match.Desc)
)

func fromDomainProfile(p domain.CompanyProfile) Profile {
	return Profile{
		Website: p.Website,
		Name:    p.Name,
		Phones:  p.Phones,
		Social:  p.Social,
		Address: p.Address,
	}
}

func toDomainProfile(p Profile) domain.CompanyProfile {
	return domain.CompanyProfile{
		Website: p.Website,
		Name:    p.Name,
		Phones:  p.Phones,
		Social:  p.Social,
		Address: p.Address,
	}
}

func fromDomainResult(r match.Result) Result {
	out := Result{
		Candidates: make([]Candidate, 0, len(r.Candidates)),
		Meta: Meta{
			Total:      r.Meta.Total,
			TotalPages: r.Meta.TotalPages,
			Page:       r.Meta.Page,
			PerPage:    r.Meta.PerPage,
			Sort:       string(r.Meta.Sort),
			Dir:        string(r.Meta.Dir),
		},
	}
	if r.Best != nil {
		best := fromDomainProfile(*r.Best)
		out.Best = &best
	}
	for _, c := range r.Candidates {
		out.Candidates = append(out.Candidates, Candidate{
			Profile: fromDomainProfile(c.Profile),
			Score:   c.Score,
		})
	}
	return out
}
