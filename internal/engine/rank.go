package engine

import (
	"sort"
	"strings"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
)

// rankedItem is one candidate entering the ranking stage. pos is the
// catalog position for snapshot candidates and the generation ordinal for
// name-only stubs; either way it is the deterministic tie-break of last
// resort.
type rankedItem struct {
	profile domain.CompanyProfile
	score   float64
	pos     int
}

// rankAndPage filters, sorts, and paginates the candidate list. The sort is
// stable with catalog position as the final tie-break key, so identical
// requests always produce identical ordering. Best is the top item of the
// full filtered list, not of the requested page.
func rankAndPage(items []rankedItem, page *match.Page) match.Result {
	filtered := filterItems(items, page)
	sortItems(filtered, page)

	total := len(filtered)
	perPage := page.PerPage()
	totalPages := (total + perPage - 1) / perPage

	pageNum := page.Number()
	if totalPages == 0 {
		pageNum = 1
	} else if pageNum > totalPages {
		pageNum = totalPages
	}

	var best *domain.CompanyProfile
	if total > 0 {
		p := filtered[0].profile
		best = &p
	}

	start := (pageNum - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	candidates := make([]match.Candidate, 0, end-start)
	for _, it := range filtered[start:end] {
		candidates = append(candidates, match.Candidate{Profile: it.profile, Score: it.score})
	}

	return match.Result{
		Best:       best,
		Candidates: candidates,
		Meta: match.Meta{
			Total:      total,
			TotalPages: totalPages,
			Page:       pageNum,
			PerPage:    perPage,
			Sort:       page.Sort(),
			Dir:        page.Dir(),
			MinScore:   page.MinScore(),
			Contains:   page.Contains(),
		},
	}
}

func filterItems(items []rankedItem, page *match.Page) []rankedItem {
	minScore := page.MinScore()
	contains := strings.ToLower(page.Contains())

	filtered := make([]rankedItem, 0, len(items))
	for _, it := range items {
		if minScore > 0 && it.score < minScore {
			continue
		}
		if contains != "" &&
			!strings.Contains(strings.ToLower(it.profile.Name), contains) &&
			!strings.Contains(strings.ToLower(it.profile.Website), contains) {
			continue
		}
		filtered = append(filtered, it)
	}
	return filtered
}

func sortItems(items []rankedItem, page *match.Page) {
	desc := page.Dir() == match.Desc

	var less func(a, b *rankedItem) int
	switch page.Sort() {
	case match.SortName:
		less = func(a, b *rankedItem) int {
			return strings.Compare(strings.ToLower(a.profile.Name), strings.ToLower(b.profile.Name))
		}
	case match.SortWebsite:
		less = func(a, b *rankedItem) int {
			return strings.Compare(strings.ToLower(a.profile.Website), strings.ToLower(b.profile.Website))
		}
	default: // match.SortScore
		less = func(a, b *rankedItem) int {
			switch {
			case a.score < b.score:
				return -1
			case a.score > b.score:
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		c := less(&items[i], &items[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		// Final deterministic tie-break, independent of sort direction.
		return items[i].pos < items[j].pos
	})
}
