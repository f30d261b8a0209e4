package loupe

import (
	"context"
	"fmt"

	"github.com/loupe-search/loupe/internal/domain/match"
)

// MatchBuilder is a fluent builder for match queries. At least one of the
// identifying fields (name, website, phone, facebook) must be set.
type MatchBuilder struct {
	client *Client

	// Identifying fields.
	name     string
	website  string
	phone    string
	facebook string

	// Ranking and pagination.
	page     int
	perPage  int
	sort     string
	dir      string
	minScore float64
	contains string
}

// Name sets the company name to match.
func (b *MatchBuilder) Name(name string) *MatchBuilder {
	b.name = name
	return b
}

// Website sets the company website to match. Any URL shape is accepted;
// it is canonicalized to a bare domain internally.
func (b *MatchBuilder) Website(website string) *MatchBuilder {
	b.website = website
	return b
}

// Phone sets the phone number to match. Formatting is ignored.
func (b *MatchBuilder) Phone(phone string) *MatchBuilder {
	b.phone = phone
	return b
}

// Facebook sets the facebook page URL or handle to match.
func (b *MatchBuilder) Facebook(facebook string) *MatchBuilder {
	b.facebook = facebook
	return b
}

// Page sets the 1-based result page.
func (b *MatchBuilder) Page(page int) *MatchBuilder {
	b.page = page
	return b
}

// PerPage sets the page size, clamped into the supported range.
func (b *MatchBuilder) PerPage(n int) *MatchBuilder {
	b.perPage = n
	return b
}

// SortBy sets the ranking key and direction. Defaults to score descending.
func (b *MatchBuilder) SortBy(sort, dir string) *MatchBuilder {
	b.sort = sort
	b.dir = dir
	return b
}

// MinScore drops candidates scoring below the threshold.
func (b *MatchBuilder) MinScore(score float64) *MatchBuilder {
	b.minScore = score
	return b
}

// Contains keeps only candidates whose name or website contains the given
// substring, case-insensitively.
func (b *MatchBuilder) Contains(s string) *MatchBuilder {
	b.contains = s
	return b
}

// Do executes the match query.
func (b *MatchBuilder) Do(ctx context.Context) (Result, error) {
	q, err := match.New(b.name, b.website, b.phone, b.facebook)
	if err != nil {
		return Result{}, fmt.Errorf("match: %w", err)
	}
	page, err := match.NewPage(
		b.page, b.perPage, match.Sort(b.sort), match.Dir(b.dir), b.minScore, b.contains,
	)
	if err != nil {
		return Result{}, fmt.Errorf("match: %w", err)
	}
	return fromDomainResult(b.client.svc.Match(ctx, &q, &page)), nil
}
