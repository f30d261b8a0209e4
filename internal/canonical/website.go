// Package canonical normalizes raw company identifiers (website URLs, phone
// numbers, social handles, names) into comparable canonical forms. Every
// function is pure and total: malformed input degrades to a best-effort
// cleanup, never an error. The same functions run at catalog-build time and
// at query time, so they must be deterministic for the exact-lookup maps
// to agree on keys.
package canonical

import (
	"net/url"
	"strings"
)

// schemePrefixes are stripped repeatedly from the front of a raw URL before
// parsing. Covers the common malformations seen in crawled data: a missing
// colon ("https//example.com") and a duplicated scheme
// ("https://https//example.com").
var schemePrefixes = []string{
	"https://", "http://",
	"https//", "http//",
	"https:", "http:",
}

// facebookHosts are host variants normalized to facebook.com.
var facebookHosts = map[string]struct{}{
	"facebook.com":   {},
	"m.facebook.com": {},
	"fb.com":         {},
	"fb.me":          {},
}

// Website normalizes a raw website URL to a canonical key: lowercased host
// without a leading "www." (a non-standard port is kept), plus the path
// when it is non-root. The scheme, query, and fragment are dropped.
//
// Website is idempotent: Website(Website(x)) == Website(x).
func Website(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = stripSchemes(s)

	u, err := url.Parse("http://" + s)
	if err != nil || u.Hostname() == "" {
		return fallbackClean(s)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.TrimSuffix(u.EscapedPath(), "/")
	if path == "" {
		return host
	}
	return host + path
}

// Facebook normalizes a raw facebook URL to "facebook.com/<handle>", where
// <handle> is the first path segment lowercased. Host variants
// (m.facebook.com, www.facebook.com, fb.com) are collapsed to facebook.com.
// A URL whose host is not a facebook variant falls back to Website.
func Facebook(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = stripSchemes(s)

	u, err := url.Parse("http://" + s)
	if err != nil || u.Hostname() == "" {
		return fallbackClean(s)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if _, ok := facebookHosts[host]; !ok {
		return Website(raw)
	}

	handle := firstSegment(u.EscapedPath())
	if handle == "" {
		return "facebook.com"
	}
	return "facebook.com/" + strings.ToLower(handle)
}

// stripSchemes removes leading scheme prefixes, repeatedly, so that a
// duplicated scheme collapses to the bare host. The scan restarts from the
// longest prefix after every strip: "http://https://x" must shed "https://"
// whole, not its "https:" head. Leftover slashes from protocol-relative
// forms are trimmed.
func stripSchemes(s string) string {
	for {
		stripped := false
		for _, p := range schemePrefixes {
			if len(s) > len(p) && strings.EqualFold(s[:len(p)], p) {
				s = s[len(p):]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.TrimLeft(s, "/")
}

// fallbackClean is the non-parsing path: strip the same prefixes and the
// trailing slash, lowercase, and return. Worst case the caller gets a
// lightly-cleaned copy of its input.
func fallbackClean(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}

func firstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
