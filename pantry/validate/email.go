// pantry/validate/email.go
package validate

import (
	"regexp"
	"unicode"
)

// emailPattern is deliberately loose: something without whitespace or '@',
// an '@', more of the same, a dot, and a non-empty tail. Whitespace is the
// Unicode set (vertical tab, \p{Z}, BOM), not just RE2's ASCII \s.
var emailPattern = regexp.MustCompile(
	`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

// EmailValid reports whether the whole of s looks like an email address.
// It is not an RFC validator and performs no domain or MX lookup.
// Callers trim s first; surrounding whitespace makes it invalid.
func EmailValid(s string) bool {
	return emailPattern.MatchString(s)
}

// IsSpace reports whether r is whitespace in the sense EmailValid uses:
// Unicode spaces and the BOM, but not NEL.
func IsSpace(r rune) bool {
	return r == '\uFEFF' || (unicode.IsSpace(r) && r != '\u0085')
}
