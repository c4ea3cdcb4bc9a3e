// Package intake splits pasted multi-line text into candidate entries and
// partitions them into valid and invalid lists.
package intake

import (
	"strings"

	"github.com/dalemusser/vendorgrid/internal/cnpj"
	"github.com/dalemusser/vendorgrid/pantry/validate"
)

// Partition is the result of checking one pasted list.
// Both slices keep the input order.
type Partition struct {
	Valid   []string
	Invalid []string
}

// Lines splits text on newlines, trims each line and drops empty ones.
// Trimming removes Unicode whitespace, including NBSP and the BOM.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimFunc(l, validate.IsSpace); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Identifiers partitions a CNPJ list. Valid entries are reduced to their
// 14 digits; invalid ones keep the trimmed text the user typed.
func Identifiers(text string) Partition {
	var p Partition
	for _, l := range Lines(text) {
		if cnpj.Valid(l) {
			p.Valid = append(p.Valid, cnpj.Digits(l))
		} else {
			p.Invalid = append(p.Invalid, l)
		}
	}
	return p
}

// Emails partitions an email list. Valid entries are kept as typed
// (trimmed), without case folding.
func Emails(text string) Partition {
	var p Partition
	for _, l := range Lines(text) {
		if validate.EmailValid(l) {
			p.Valid = append(p.Valid, l)
		} else {
			p.Invalid = append(p.Invalid, l)
		}
	}
	return p
}
