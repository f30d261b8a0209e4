// Package catalog loads company profiles, derives per-record canonical
// features, and builds the read-only exact-lookup indexes. Everything here
// runs once per catalog load; the resulting Snapshot is shared by concurrent
// queries without locking.
package catalog

import (
	"strings"

	"github.com/loupe-search/loupe/internal/canonical"
	"github.com/loupe-search/loupe/internal/domain"
)

// Augment derives the canonical feature set of a single profile. It is a
// pure function of the profile: rebuilding from the same input yields an
// identical record.
func Augment(p domain.CompanyProfile) domain.AugmentedRecord {
	site := canonical.Website(p.Website)
	host := hostOf(site)

	rec := domain.AugmentedRecord{
		CanonicalSite:  site,
		Host:           host,
		DomainTokens:   canonical.DomainTokens(host),
		NormalizedName: canonical.NormalizeName(p.Name),
		NameTokens:     canonical.NameTokens(p.Name),
		PhoneKeys:      phoneKeys(p.Phones),
		SocialHandles:  facebookHandles(p.Social[domain.NetworkFacebook]),
	}
	return rec
}

// AugmentAll derives features for the whole catalog, parallel by position.
func AugmentAll(profiles []domain.CompanyProfile) []domain.AugmentedRecord {
	records := make([]domain.AugmentedRecord, len(profiles))
	for i, p := range profiles {
		records[i] = Augment(p)
	}
	return records
}

// phoneKeys maps raw phones to deduplicated ten-digit keys. Shorter keys are
// discarded: a sub-length key never participates in matching.
func phoneKeys(phones []string) []string {
	keys := make([]string, 0, len(phones))
	seen := make(map[string]struct{}, len(phones))
	for _, raw := range phones {
		key := canonical.PhoneKey(raw)
		if len(key) != canonical.PhoneKeyLength {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// facebookHandles canonicalizes a profile's facebook URLs. Only entries that
// resolve to a facebook.com handle are kept; facebook is the only network
// used for matching in this catalog version.
func facebookHandles(urls []string) []string {
	handles := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, raw := range urls {
		h := canonical.Facebook(raw)
		if !strings.HasPrefix(h, "facebook.com/") {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		handles = append(handles, h)
	}
	return handles
}

func hostOf(site string) string {
	if i := strings.IndexByte(site, '/'); i >= 0 {
		return site[:i]
	}
	return site
}
