package canonical

import "strings"

// stopTokens are dropped during tokenization: legal-entity suffixes and
// generic connectives that otherwise dominate short-name similarity.
var stopTokens = map[string]struct{}{
	"inc": {}, "incorporated": {}, "llc": {}, "llp": {}, "pllc": {},
	"ltd": {}, "limited": {}, "corp": {}, "corporation": {}, "co": {},
	"company": {}, "gmbh": {}, "plc": {}, "sa": {}, "ag": {}, "srl": {},
	"bv": {}, "pty": {}, "pc": {},
	"the": {}, "and": {}, "of": {}, "for": {},
}

// tldSuffixes are stripped from a host before domain tokenization, longest
// first so ".co.uk" wins over ".uk".
var tldSuffixes = []string{
	".co.uk", ".org.uk", ".com.au", ".co.nz", ".co.za",
	".com", ".net", ".org", ".io", ".co", ".biz", ".info",
	".us", ".uk", ".ca", ".au", ".de", ".fr", ".eu", ".app", ".dev",
}

// NormalizeName lowercases a raw company name, replaces every
// non-alphanumeric rune with a space, and collapses runs of whitespace.
// Legal suffixes are kept: normalized-name equality is a stronger signal
// than token overlap and should not conflate "Acme Inc" with "Acme LLC".
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(foldAlnum(raw)), " ")
}

// NameTokens tokenizes a raw company name into a deduplicated token set,
// dropping single-character tokens and stop tokens. Order of first
// appearance is preserved so downstream iteration is deterministic.
func NameTokens(raw string) []string {
	fields := strings.Fields(foldAlnum(raw))
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, tok := range fields {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := stopTokens[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// DomainTokens strips a known top-level-domain suffix from a host and
// tokenizes the remaining labels the same way names are tokenized, so a
// query name can overlap a brand embedded in the domain.
func DomainTokens(host string) []string {
	h := strings.ToLower(strings.TrimSpace(host))
	h = strings.TrimPrefix(h, "www.")
	h = strings.TrimSuffix(h, ".")
	for _, suffix := range tldSuffixes {
		if strings.HasSuffix(h, suffix) {
			h = strings.TrimSuffix(h, suffix)
			break
		}
	}
	return NameTokens(h)
}

// foldAlnum lowercases s and maps every non-alphanumeric rune to a space.
func foldAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
