package canonical

import "testing"

func TestWebsite(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain host", "https://acme.com", "acme.com"},
		{"www stripped", "https://www.acme.com", "acme.com"},
		{"trailing slash stripped", "https://acme.com/", "acme.com"},
		{"path kept", "https://acme.com/contact", "acme.com/contact"},
		{"path trailing slash stripped", "https://acme.com/contact/", "acme.com/contact"},
		{"host lowercased", "HTTPS://ACME.COM", "acme.com"},
		{"no scheme", "acme.com", "acme.com"},
		{"missing colon", "https//acme.com", "acme.com"},
		{"duplicated scheme", "https://https//acornlawpc.com/", "acornlawpc.com"},
		{"duplicated full scheme", "http://https://acme.com", "acme.com"},
		{"protocol relative", "//acme.com", "acme.com"},
		{"bare scheme residue", "https://///acme.com", "acme.com"},
		{"query dropped", "https://acme.com/page?utm=1", "acme.com/page"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Website(tt.raw); got != tt.want {
				t.Errorf("Website(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestWebsite_Idempotent(t *testing.T) {
	inputs := []string{
		"https://acme.com",
		"https://https//acornlawpc.com/",
		"www.Example.com/About/",
		"not a url at all",
		"https//typo.example.net/x/y",
	}
	for _, raw := range inputs {
		once := Website(raw)
		twice := Website(once)
		if once != twice {
			t.Errorf("Website not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestWebsite_NeverEmpty(t *testing.T) {
	// Unparseable input degrades to a cleaned copy, never an empty string.
	raw := "ht!tp:\x7f//weird"
	if got := Website(raw); got == "" {
		t.Error("Website returned empty string for garbage input")
	}
}

func TestFacebook(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"canonical already", "facebook.com/acme", "facebook.com/acme"},
		{"https www", "https://www.facebook.com/acme", "facebook.com/acme"},
		{"mobile host", "https://m.facebook.com/acme", "facebook.com/acme"},
		{"fb short host", "https://fb.com/acme", "facebook.com/acme"},
		{"only first segment", "https://facebook.com/acme/about/", "facebook.com/acme"},
		{"handle lowercased", "https://facebook.com/AcmeInc", "facebook.com/acmeinc"},
		{"no handle", "https://facebook.com/", "facebook.com"},
		{"scheme typo", "https//facebook.com/acme", "facebook.com/acme"},
		{"non-facebook host falls back", "https://acme.com/team", "acme.com/team"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Facebook(tt.raw); got != tt.want {
				t.Errorf("Facebook(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFacebook_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.facebook.com/acme",
		"fb.com/Acme",
		"https://acme.com/page",
	}
	for _, raw := range inputs {
		once := Facebook(raw)
		twice := Facebook(once)
		if once != twice {
			t.Errorf("Facebook not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
