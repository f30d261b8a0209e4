package canonical

// PhoneKeyLength is the number of trailing digits kept in a phone key.
// Ten digits tolerates country-code presence/absence and formatting variance
// for typical numbering plans; it is a deliberate recall-over-precision
// tradeoff.
const PhoneKeyLength = 10

// PhoneKey strips every non-digit character from a raw phone number and
// returns the last ten digits. Numbers with fewer than ten digits yield a
// short key, which simply never collides with a full-length key and so
// contributes no match.
func PhoneKey(raw string) string {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) > PhoneKeyLength {
		digits = digits[len(digits)-PhoneKeyLength:]
	}
	return string(digits)
}
