package domain

import "time"

// CrawlSignals are the contact signals extracted from one crawled website.
// They feed the catalog build step, which merges them with the name dataset
// into CompanyProfile records.
type CrawlSignals struct {
	Website   string              `json:"website"`
	Name      string              `json:"name,omitempty"`
	Phones    []string            `json:"phones,omitempty"`
	Social    map[string][]string `json:"social,omitempty"`
	Address   string              `json:"address,omitempty"`
	RunID     string              `json:"run_id,omitempty"`
	FetchedAt time.Time           `json:"fetched_at,omitempty"`
}
