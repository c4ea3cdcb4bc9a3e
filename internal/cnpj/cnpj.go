// Package cnpj handles the 14-digit Brazilian business tax identifier.
//
// Validation here is a format check only: the value must carry exactly 14
// digits once punctuation is removed, and those digits must not all be the
// same. The modulus-11 check digits are not verified.
package cnpj

import (
	"strings"
)

// Length is the number of digits in a CNPJ.
const Length = 14

// Digits returns s with every character that is not an ASCII digit removed.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Valid reports whether s, stripped of punctuation, is 14 digits long and is
// not a single digit repeated.
func Valid(s string) bool {
	d := Digits(s)
	if len(d) != Length {
		return false
	}
	return !repeated(d)
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

// Format returns the punctuated display form DD.DDD.DDD/DDDD-DD.
// The second return value is false when s does not resolve to 14 digits,
// in which case s is returned unchanged.
func Format(s string) (string, bool) {
	d := Digits(s)
	if len(d) != Length {
		return s, false
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14], true
}

// FormatLines reformats every line of text whose trimmed digits number
// exactly 14. Other lines, blank ones included, are kept byte for byte.
func FormatLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if f, ok := Format(strings.TrimSpace(line)); ok {
			lines[i] = f
		}
	}
	return strings.Join(lines, "\n")
}
