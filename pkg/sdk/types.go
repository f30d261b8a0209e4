package sdk

// MatchRequest describes the company to resolve. Every field is optional,
// but at least one identifying field (name, website, phone, facebook) must
// be set. The paging fields mirror the API defaults when zero.
type MatchRequest struct {
	Name     string `json:"name,omitempty"`
	Website  string `json:"website,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Facebook string `json:"facebook,omitempty"`

	Page     int     `json:"page,omitempty"`
	PerPage  int     `json:"per_page,omitempty"`
	Sort     string  `json:"sort,omitempty"`
	Dir      string  `json:"dir,omitempty"`
	MinScore float64 `json:"min_score,omitempty"`
	Contains string  `json:"contains,omitempty"`
}

// Profile is a catalog company record.
type Profile struct {
	Website string              `json:"website"`
	Name    string              `json:"name,omitempty"`
	Phones  []string            `json:"phones,omitempty"`
	Social  map[string][]string `json:"social,omitempty"`
	Address string              `json:"address,omitempty"`
}

// Candidate is one ranked match with its confidence score.
type Candidate struct {
	Profile Profile `json:"profile"`
	Score   float64 `json:"score"`
}

// Meta describes the ranking and pagination the server applied.
type Meta struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	Sort       string  `json:"sort"`
	Dir        string  `json:"dir"`
	MinScore   float64 `json:"minScore"`
	Contains   string  `json:"contains,omitempty"`
}

// MatchResult is the response to a match query.
type MatchResult struct {
	Best       *Profile    `json:"best"`
	Candidates []Candidate `json:"candidates"`
	Meta       Meta        `json:"meta"`
}

// Health is the service health report.
type Health struct {
	Status         string `json:"status"`
	CatalogRecords int    `json:"catalog_records"`
}

// Version is the service build information.
type Version struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}
