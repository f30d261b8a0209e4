package catalog

import "github.com/loupe-search/loupe/internal/domain"

// Lookup holds the four exact-lookup maps from a canonical key to the
// catalog positions sharing that key. Positions are appended in catalog
// order, so iteration over a key's positions is deterministic. Built once;
// read-only thereafter.
type Lookup struct {
	site   map[string][]int
	phone  map[string][]int
	social map[string][]int
	domain map[string][]int
}

// BuildLookup indexes augmented records by canonical site, phone key,
// facebook handle, and domain token.
func BuildLookup(records []domain.AugmentedRecord) *Lookup {
	l := &Lookup{
		site:   make(map[string][]int, len(records)),
		phone:  make(map[string][]int, len(records)),
		social: make(map[string][]int, len(records)),
		domain: make(map[string][]int, len(records)),
	}
	for pos, rec := range records {
		if rec.CanonicalSite != "" {
			l.site[rec.CanonicalSite] = append(l.site[rec.CanonicalSite], pos)
		}
		for _, key := range rec.PhoneKeys {
			l.phone[key] = append(l.phone[key], pos)
		}
		for _, handle := range rec.SocialHandles {
			l.social[handle] = append(l.social[handle], pos)
		}
		for _, tok := range rec.DomainTokens {
			l.domain[tok] = append(l.domain[tok], pos)
		}
	}
	return l
}

// Site returns the positions whose canonical site equals key.
func (l *Lookup) Site(key string) []int { return l.site[key] }

// Phone returns the positions carrying the given ten-digit phone key.
func (l *Lookup) Phone(key string) []int { return l.phone[key] }

// Social returns the positions carrying the given canonical facebook handle.
func (l *Lookup) Social(key string) []int { return l.social[key] }

// Domain returns the positions whose domain contains the given token.
func (l *Lookup) Domain(token string) []int { return l.domain[token] }
