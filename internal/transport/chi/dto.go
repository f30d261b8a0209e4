package chi

// errorCode classifies API errors for clients.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeRateLimited        errorCode = "rate_limited"
	codeCatalogUnavailable errorCode = "catalog_unavailable"
	codeInternalError      errorCode = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// matchRequest is the POST /api/match body. The same fields are accepted as
// query parameters on GET /api/match.
type matchRequest struct {
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

// healthResponse is the GET /health body.
type healthResponse struct {
	Status         string `json:"status"`
	CatalogRecords int    `json:"catalog_records"`
}

// versionResponse is the GET /version body.
type versionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}
