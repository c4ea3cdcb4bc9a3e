package cnpj

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	assert.Equal(t, "11222333000181", Digits("11.222.333/0001-81"))
	assert.Equal(t, "", Digits("abc"))
	assert.Equal(t, "123", Digits(" 1a2-3 "))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain digits", "11222333000181", true},
		{"punctuated", "11.222.333/0001-81", true},
		{"spaces and letters ignored", "11 222 333 0001 81x", true},
		{"too short", "123", false},
		{"thirteen digits", "1122233300018", false},
		{"fifteen digits", "112223330001811", false},
		{"empty", "", false},
		{"check digits are not verified", "11222333000100", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}

func TestValid_RejectsRepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), Length)
		assert.False(t, Valid(s), "%s should be invalid", s)
		assert.False(t, Valid(s[:2]+"."+s[2:5]+"."+s[5:8]+"/"+s[8:12]+"-"+s[12:]), "punctuated %s should be invalid", s)
	}
}

func TestValid_PunctuationDoesNotChangeResult(t *testing.T) {
	for _, s := range []string{"11222333000181", "12345678901234", "99999999999998"} {
		f, ok := Format(s)
		assert.True(t, ok)
		assert.Equal(t, Valid(s), Valid(f))
	}
}

func TestFormat(t *testing.T) {
	f, ok := Format("11222333000181")
	assert.True(t, ok)
	assert.Equal(t, "11.222.333/0001-81", f)

	f, ok = Format("123")
	assert.False(t, ok)
	assert.Equal(t, "123", f)
}

func TestFormatLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single valid line", "11222333000181", "11.222.333/0001-81"},
		{"short line untouched", "123", "123"},
		{"already formatted", "11.222.333/0001-81", "11.222.333/0001-81"},
		{"mixed lines", "11222333000181\n123\n 22333444000155 ", "11.222.333/0001-81\n123\n22.333.444/0001-55"},
		{"blank lines kept", "\n11222333000181\n\n", "\n11.222.333/0001-81\n\n"},
		{"repeated digits still formatted", "11111111111111", "11.111.111/1111-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLines(tt.in))
		})
	}
}
