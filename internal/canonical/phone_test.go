package canonical

import "testing"

func TestPhoneKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"formatted us", "+1 (415) 555-1212", "4155551212"},
		{"country code no formatting", "14155551212", "4155551212"},
		{"bare ten digits", "4155551212", "4155551212"},
		{"uk number", "+44 20 7123 4567", "2071234567"},
		{"short number keeps all digits", "555-1212", "5551212"},
		{"no digits", "call us", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhoneKey(tt.raw); got != tt.want {
				t.Errorf("PhoneKey(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPhoneKey_CollisionTolerance(t *testing.T) {
	// The same number with and without country code maps to one key.
	a := PhoneKey("+1 (415) 555-1212")
	b := PhoneKey("14155551212")
	c := PhoneKey("4155551212")
	if a != b || b != c {
		t.Errorf("keys differ: %q %q %q", a, b, c)
	}
}
