// Package records builds vendor-access records as the cross product of
// valid identifiers and valid emails.
package records

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults applied when the form leaves a field blank.
const (
	DefaultVendorName = "AMBEV"
	DefaultCountry    = "BR"
	DefaultVendorID   = "7312b2db-b028-4bd9-9d8a-a8cfa006029e"
)

// Columns is the fixed column order used by the table and every export.
var Columns = []string{"user", "country", "vendorAccountId", "vendorId", "vendorName", "action"}

// Record is one output row.
type Record struct {
	User            string `json:"user"`
	Country         string `json:"country"`
	VendorAccountID string `json:"vendorAccountId"`
	VendorID        string `json:"vendorId"`
	VendorName      string `json:"vendorName"`
	Action          string `json:"action"`
}

// Values returns the record's fields in Columns order.
func (r Record) Values() []string {
	return []string{r.User, r.Country, r.VendorAccountID, r.VendorID, r.VendorName, r.Action}
}

// Params are the inputs of one generation run.
type Params struct {
	Identifiers []string // digits only, already validated
	Emails      []string // already validated
	Action      string
	VendorName  string
	Country     string
	VendorID    string // run-wide vendor id; DefaultVendorID when empty
}

// Set is an immutable, ordered collection of records from a single run.
type Set struct {
	items []Record
}

// Build emits one record per (identifier, email) pair, identifier-major,
// email-minor. Every record shares the same vendor id.
func Build(p Params) Set {
	vendorID := p.VendorID
	if vendorID == "" {
		vendorID = DefaultVendorID
	}
	vendorName := upper(orDefault(p.VendorName, DefaultVendorName))
	country := upper(orDefault(p.Country, DefaultCountry))

	items := make([]Record, 0, len(p.Identifiers)*len(p.Emails))
	for _, id := range p.Identifiers {
		for _, email := range p.Emails {
			items = append(items, Record{
				User:            email,
				Country:         country,
				VendorAccountID: id,
				VendorID:        vendorID,
				VendorName:      vendorName,
				Action:          p.Action,
			})
		}
	}
	return Set{items: items}
}

// Len returns the number of records.
func (s Set) Len() int { return len(s.items) }

// Empty reports whether the set has no records.
func (s Set) Empty() bool { return len(s.items) == 0 }

// At returns the i-th record.
func (s Set) At(i int) Record { return s.items[i] }

// Records returns a copy of the records.
func (s Set) Records() []Record {
	return append([]Record(nil), s.items...)
}

// Rows returns every record as a row of values in Columns order.
func (s Set) Rows() [][]string {
	rows := make([][]string, len(s.items))
	for i, r := range s.items {
		rows[i] = r.Values()
	}
	return rows
}

// orDefault falls back to def when s is empty or whitespace only.
// Non-blank values are kept as given, surrounding spaces included.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// upper applies full Unicode case mapping, so "ß" becomes "SS".
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
