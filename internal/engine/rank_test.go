package engine

import (
	"testing"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
)

func mustPage(t *testing.T, page, perPage int, sort match.Sort, dir match.Dir, minScore float64, contains string) *match.Page {
	t.Helper()
	p, err := match.NewPage(page, perPage, sort, dir, minScore, contains)
	if err != nil {
		t.Fatalf("match.NewPage: %v", err)
	}
	return &p
}

func fixtureItems() []rankedItem {
	return []rankedItem{
		{profile: domain.CompanyProfile{Website: "delta.test", Name: "Delta"}, score: 2, pos: 0},
		{profile: domain.CompanyProfile{Website: "acme.com", Name: "Acme"}, score: 9, pos: 1},
		{profile: domain.CompanyProfile{Website: "beta.test", Name: "Beta"}, score: 2, pos: 2},
		{profile: domain.CompanyProfile{Website: "contoso.io", Name: "Contoso"}, score: 5, pos: 3},
	}
}

func TestRankAndPage_ScoreDescWithPositionTieBreak(t *testing.T) {
	page := mustPage(t, 1, 10, match.SortScore, match.Desc, 0, "")
	res := rankAndPage(fixtureItems(), page)

	if res.Best == nil || res.Best.Name != "Acme" {
		t.Fatalf("best = %+v, want Acme", res.Best)
	}
	wantOrder := []string{"Acme", "Contoso", "Delta", "Beta"}
	if len(res.Candidates) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(res.Candidates), len(wantOrder))
	}
	for i, name := range wantOrder {
		if res.Candidates[i].Profile.Name != name {
			t.Errorf("candidate[%d] = %s, want %s", i, res.Candidates[i].Profile.Name, name)
		}
	}
}

func TestRankAndPage_NameAscending(t *testing.T) {
	page := mustPage(t, 1, 10, match.SortName, match.Asc, 0, "")
	res := rankAndPage(fixtureItems(), page)

	wantOrder := []string{"Acme", "Beta", "Contoso", "Delta"}
	for i, name := range wantOrder {
		if res.Candidates[i].Profile.Name != name {
			t.Errorf("candidate[%d] = %s, want %s", i, res.Candidates[i].Profile.Name, name)
		}
	}
	// Best reflects the requested ordering, not the score.
	if res.Best == nil || res.Best.Name != "Acme" {
		t.Errorf("best = %+v, want Acme", res.Best)
	}
}

func TestRankAndPage_Pagination(t *testing.T) {
	page := mustPage(t, 2, 5, match.SortScore, match.Desc, 0, "")

	items := make([]rankedItem, 12)
	for i := range items {
		items[i] = rankedItem{
			profile: domain.CompanyProfile{Website: "site.test", Name: "Site"},
			score:   float64(12 - i),
			pos:     i,
		}
	}
	res := rankAndPage(items, page)

	if res.Meta.Total != 12 || res.Meta.TotalPages != 3 || res.Meta.Page != 2 {
		t.Fatalf("meta = %+v, want total 12, pages 3, page 2", res.Meta)
	}
	if len(res.Candidates) != 5 {
		t.Fatalf("len = %d, want 5", len(res.Candidates))
	}
	if res.Candidates[0].Score != 7 {
		t.Errorf("first score on page 2 = %v, want 7", res.Candidates[0].Score)
	}
	// Best is the global top even off-page.
	if res.Best == nil {
		t.Fatal("best is nil")
	}
}

func TestRankAndPage_PageBeyondEndClamped(t *testing.T) {
	page := mustPage(t, 99, 10, match.SortScore, match.Desc, 0, "")
	res := rankAndPage(fixtureItems(), page)

	if res.Meta.Page != 1 {
		t.Errorf("page = %d, want clamp to 1", res.Meta.Page)
	}
	if len(res.Candidates) != 4 {
		t.Errorf("len = %d, want 4", len(res.Candidates))
	}
}

func TestRankAndPage_MinScoreFilter(t *testing.T) {
	page := mustPage(t, 1, 10, match.SortScore, match.Desc, 3, "")
	res := rankAndPage(fixtureItems(), page)

	if res.Meta.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Meta.Total)
	}
	for _, c := range res.Candidates {
		if c.Score < 3 {
			t.Errorf("candidate %s score %v below min", c.Profile.Name, c.Score)
		}
	}
}

func TestRankAndPage_ContainsFilter(t *testing.T) {
	page := mustPage(t, 1, 10, match.SortScore, match.Desc, 0, "CONTOSO")
	res := rankAndPage(fixtureItems(), page)

	if res.Meta.Total != 1 {
		t.Fatalf("total = %d, want 1", res.Meta.Total)
	}
	if res.Candidates[0].Profile.Name != "Contoso" {
		t.Errorf("candidate = %s, want Contoso", res.Candidates[0].Profile.Name)
	}
}

func TestRankAndPage_ContainsMatchesWebsite(t *testing.T) {
	page := mustPage(t, 1, 10, match.SortScore, match.Desc, 0, "acme.com")
	res := rankAndPage(fixtureItems(), page)

	if res.Meta.Total != 1 || res.Candidates[0].Profile.Name != "Acme" {
		t.Fatalf("got %+v, want single Acme via website substring", res.Candidates)
	}
}

func TestRankAndPage_Empty(t *testing.T) {
	page := mustPage(t, 1, 10, match.SortScore, match.Desc, 0, "")
	res := rankAndPage(nil, page)

	if res.Best != nil {
		t.Errorf("best = %+v, want nil", res.Best)
	}
	if res.Meta.Total != 0 || res.Meta.TotalPages != 0 || res.Meta.Page != 1 {
		t.Errorf("meta = %+v, want empty page 1", res.Meta)
	}
	if len(res.Candidates) != 0 {
		t.Errorf("candidates = %v, want none", res.Candidates)
	}
}
