package crawler

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/loupe-search/loupe/internal/canonical"
	"github.com/loupe-search/loupe/internal/domain"
)

// socialHosts maps link hosts to the network they belong to.
var socialHosts = map[string]string{
	"facebook.com":   domain.NetworkFacebook,
	"m.facebook.com": domain.NetworkFacebook,
	"fb.com":         domain.NetworkFacebook,
	"fb.me":          domain.NetworkFacebook,
	"linkedin.com":   domain.NetworkLinkedIn,
	"twitter.com":    domain.NetworkTwitter,
	"x.com":          domain.NetworkTwitter,
	"instagram.com":  domain.NetworkInstagram,
	"youtube.com":    domain.NetworkYouTube,
	"youtu.be":       domain.NetworkYouTube,
}

// Extract pulls contact signals out of one HTML page. It never fails:
// malformed markup yields whatever signals were seen before the parse gave
// up. Phones come from tel: links and from digit patterns in visible text,
// deduplicated by their ten-digit key.
func Extract(site string, page []byte) domain.CrawlSignals {
	sig := domain.CrawlSignals{Website: site}

	var inTitle, inSkip, nameLocked bool
	var title strings.Builder
	phoneSeen := map[string]struct{}{}
	socialSeen := map[string]struct{}{}

	addPhone := func(phone string) {
		key := canonical.PhoneKey(phone)
		if key == "" {
			return
		}
		if _, dup := phoneSeen[key]; dup {
			return
		}
		phoneSeen[key] = struct{}{}
		sig.Phones = append(sig.Phones, phone)
	}

	z := html.NewTokenizer(bytes.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			sig.Name = strings.TrimSpace(title.String())
			return sig

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "title":
				inTitle = true
			case "script", "style":
				inSkip = true
			case "meta":
				if name := metaSiteName(tok); name != "" {
					// og:site_name beats the page title.
					title.Reset()
					title.WriteString(name)
					nameLocked = true
				}
			case "a":
				href := attr(tok, "href")
				if phone, ok := telLink(href); ok {
					addPhone(phone)
					continue
				}
				if network, link, ok := socialLink(href); ok {
					if _, dup := socialSeen[link]; !dup {
						socialSeen[link] = struct{}{}
						if sig.Social == nil {
							sig.Social = make(map[string][]string)
						}
						sig.Social[network] = append(sig.Social[network], link)
					}
				}
			}

		case html.EndTagToken:
			switch z.Token().Data {
			case "title":
				inTitle = false
			case "script", "style":
				inSkip = false
			}

		case html.TextToken:
			if inSkip {
				continue
			}
			text := z.Text()
			if inTitle && !nameLocked {
				title.Write(text)
				continue
			}
			for _, phone := range scanPhones(string(text)) {
				addPhone(phone)
			}
		}
	}
}

// phonePattern matches phone-looking digit runs in text.
var phonePattern = regexp.MustCompile(`\+?\(?\d[\d\s().-]{7,}\d`)

// scanPhones finds phone number candidates in visible text. A candidate must
// carry a full ten-digit key; runs with more than fourteen digits are dropped
// as numeric IDs rather than phones.
func scanPhones(text string) []string {
	var out []string
	for _, m := range phonePattern.FindAllString(text, -1) {
		if canonical.PhoneKey(m) == "" {
			continue
		}
		if digitCount(m) > 14 {
			continue
		}
		out = append(out, strings.TrimSpace(m))
	}
	return out
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// telLink parses a tel: href into its raw phone string.
func telLink(href string) (string, bool) {
	const scheme = "tel:"
	if !strings.HasPrefix(strings.ToLower(href), scheme) {
		return "", false
	}
	phone := strings.TrimSpace(href[len(scheme):])
	if canonical.PhoneKey(phone) == "" {
		return "", false
	}
	return phone, true
}

// socialLink classifies an href into a known social network and returns the
// canonicalized link.
func socialLink(href string) (network, link string, ok bool) {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	net, known := socialHosts[host]
	if !known {
		return "", "", false
	}
	if net == domain.NetworkFacebook {
		return net, canonical.Facebook(href), true
	}
	return net, canonical.Website(href), true
}

// metaSiteName returns the og:site_name content of a meta tag, if present.
func metaSiteName(tok html.Token) string {
	if attr(tok, "property") != "og:site_name" {
		return ""
	}
	return strings.TrimSpace(attr(tok, "content"))
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
