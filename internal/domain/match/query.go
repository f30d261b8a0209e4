// Package match defines the query, paging, and result types of the matching
// engine's contract.
package match

import (
	"strings"

	"github.com/loupe-search/loupe/internal/domain"
)

// MaxFieldLength bounds each identifying field of a query.
const MaxFieldLength = 1024

// Query is a validated match query: a noisy, partial description of a
// company. At least one identifying field is present.
type Query struct {
	name     string
	website  string
	phone    string
	facebook string
}

// New validates and normalizes the identifying fields. Every field is
// optional, but an all-empty query is rejected with domain.ErrEmptyQuery.
// Overlong fields are truncated rather than rejected: a bad identifier
// should reduce match confidence, not abort the request.
func New(name, website, phone, facebook string) (Query, error) {
	q := Query{
		name:     clampField(name),
		website:  clampField(website),
		phone:    clampField(phone),
		facebook: clampField(facebook),
	}
	if q.name == "" && q.website == "" && q.phone == "" && q.facebook == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	return q, nil
}

func clampField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > MaxFieldLength {
		s = s[:MaxFieldLength]
	}
	return s
}

// Name returns the raw company name, or "".
func (q *Query) Name() string { return q.name }

// Website returns the raw website URL, or "".
func (q *Query) Website() string { return q.website }

// Phone returns the raw phone number, or "".
func (q *Query) Phone() string { return q.phone }

// Facebook returns the raw facebook URL, or "".
func (q *Query) Facebook() string { return q.facebook }

// Text concatenates the present fields into one free-text query for the
// fuzzy fallback tiers.
func (q *Query) Text() string {
	parts := make([]string, 0, 4)
	for _, f := range []string{q.name, q.website, q.phone, q.facebook} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
