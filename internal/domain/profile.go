// Package domain holds the core entities of the loupe matching service.
package domain

// Social network names recognized in catalog profiles.
const (
	NetworkFacebook  = "facebook"
	NetworkLinkedIn  = "linkedin"
	NetworkTwitter   = "twitter"
	NetworkInstagram = "instagram"
	NetworkYouTube   = "youtube"
)

// SocialNetworks lists the networks a profile may carry, in canonical order.
var SocialNetworks = []string{
	NetworkFacebook, NetworkLinkedIn, NetworkTwitter, NetworkInstagram, NetworkYouTube,
}

// CompanyProfile is a single catalog record. Profiles are produced by the
// build step and are immutable once loaded: the engine only ever reads them.
type CompanyProfile struct {
	Website string              `json:"website"`
	Name    string              `json:"name,omitempty"`
	Phones  []string            `json:"phones,omitempty"`
	Social  map[string][]string `json:"social,omitempty"`
	Address string              `json:"address,omitempty"`
}

// AugmentedRecord carries the precomputed canonical features of one
// CompanyProfile, 1:1 by catalog position. Every field is a pure function of
// the profile, so rebuilding from the same profile yields identical output.
type AugmentedRecord struct {
	CanonicalSite  string
	Host           string
	DomainTokens   []string
	NormalizedName string
	NameTokens     []string
	PhoneKeys      []string
	SocialHandles  []string
}

// NameEntry is one row of the auxiliary {website, name} dataset used by the
// last-resort fallback tier and by the catalog build step.
type NameEntry struct {
	Website string `json:"website"`
	Name    string `json:"name"`
}
