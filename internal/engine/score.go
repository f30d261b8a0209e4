// Package engine implements the matching engine: candidate discovery over
// the exact-lookup and text indexes, additive confidence scoring, and
// deterministic ranking with pagination.
package engine

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/loupe-search/loupe/internal/canonical"
	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
)

// Score points per signal. All values are exact binary fractions, so sums
// are bit-for-bit reproducible.
const (
	pointsSiteEqual     = 5.0
	pointsNameEqual     = 3.0
	pointsPhoneMatch    = 3.0
	pointsFacebookEqual = 4.0
)

// nameJaccardBuckets and domainJaccardBuckets award points for token-set
// overlap, highest threshold first.
var (
	nameJaccardBuckets = []scoreBucket{
		{0.8, 2.0}, {0.5, 1.5}, {0.3, 1.0}, {0.25, 0.5},
	}
	domainJaccardBuckets = []scoreBucket{
		{0.8, 2.0}, {0.6, 1.5}, {0.4, 1.0}, {0.25, 0.5},
	}
	nameRatioBuckets = []scoreBucket{
		{0.9, 1.5}, {0.8, 1.0},
	}
)

type scoreBucket struct {
	threshold float64
	points    float64
}

func bucketPoints(buckets []scoreBucket, value float64) float64 {
	for _, b := range buckets {
		if value >= b.threshold {
			return b.points
		}
	}
	return 0
}

// queryFeatures holds the canonical form of every present query field,
// computed once per request and reused across all candidates.
type queryFeatures struct {
	site           string
	host           string
	domainTokens   []string
	normalizedName string
	nameTokens     []string
	phoneKey       string
	facebookHandle string
}

// newQueryFeatures canonicalizes the query fields. Absent fields yield zero
// values, which contribute no points.
func newQueryFeatures(q *match.Query) queryFeatures {
	var f queryFeatures
	if w := q.Website(); w != "" {
		f.site = canonical.Website(w)
		if i := strings.IndexByte(f.site, '/'); i >= 0 {
			f.host = f.site[:i]
		} else {
			f.host = f.site
		}
		f.domainTokens = canonical.DomainTokens(f.host)
	}
	if n := q.Name(); n != "" {
		f.normalizedName = canonical.NormalizeName(n)
		f.nameTokens = canonical.NameTokens(n)
	}
	if p := q.Phone(); p != "" {
		if key := canonical.PhoneKey(p); len(key) == canonical.PhoneKeyLength {
			f.phoneKey = key
		}
	}
	if fb := q.Facebook(); fb != "" {
		if h := canonical.Facebook(fb); strings.HasPrefix(h, "facebook.com/") {
			f.facebookHandle = h
		}
	}
	return f
}

// score computes the additive confidence score of one candidate against the
// precomputed query features. Signals are independent and stack; the result
// is non-negative and zero only when no signal overlaps at all.
func score(f *queryFeatures, rec *domain.AugmentedRecord) float64 {
	var total float64

	if f.site != "" && f.site == rec.CanonicalSite {
		total += pointsSiteEqual
	}

	if f.normalizedName != "" && rec.NormalizedName != "" {
		if f.normalizedName == rec.NormalizedName {
			total += pointsNameEqual
		} else {
			total += bucketPoints(nameJaccardBuckets, jaccard(f.nameTokens, rec.NameTokens))
			total += bucketPoints(nameRatioBuckets, editRatio(f.normalizedName, rec.NormalizedName))
		}
	}

	if len(f.domainTokens) > 0 {
		total += bucketPoints(domainJaccardBuckets, jaccard(f.domainTokens, rec.DomainTokens))
	}

	if f.phoneKey != "" {
		for _, key := range rec.PhoneKeys {
			if key == f.phoneKey {
				total += pointsPhoneMatch
				break
			}
		}
	}

	if f.facebookHandle != "" {
		for _, h := range rec.SocialHandles {
			if h == f.facebookHandle {
				total += pointsFacebookEqual
				break
			}
		}
	}

	return total
}

// jaccard is |A∩B| / |A∪B| over token sets; 0 when either set is empty.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	inter := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// editRatio is 1 - levenshtein(a,b)/max(len), the normalized edit
// similarity; 1 when both strings are empty.
func editRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(max)
}
