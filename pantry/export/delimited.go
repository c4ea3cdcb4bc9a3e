// export/delimited.go
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Common errors.
var (
	ErrNoData       = errors.New("export: no data to export")
	ErrEmptyHeaders = errors.New("export: headers cannot be empty")
)

// Delimited is a plain delimited-text exporter.
//
// Unlike encoding/csv it never escapes: with QuoteAll every value is wrapped
// in double quotes verbatim, so a value that itself contains a quote produces
// a line most CSV readers will split incorrectly. Lines are joined by "\n"
// and the output has no trailing newline.
type Delimited struct {
	headers   []string
	rows      [][]string
	delimiter string
	quoteAll  bool
}

// NewDelimited creates a comma-delimited exporter.
func NewDelimited() *Delimited {
	return &Delimited{delimiter: ","}
}

// TabDelimited sets tab as the delimiter.
func (d *Delimited) TabDelimited() *Delimited {
	d.delimiter = "\t"
	return d
}

// QuoteAll wraps every data value (not the header) in double quotes.
func (d *Delimited) QuoteAll() *Delimited {
	d.quoteAll = true
	return d
}

// Headers sets the column headers.
func (d *Delimited) Headers(headers ...string) *Delimited {
	d.headers = headers
	return d
}

// Rows appends rows.
func (d *Delimited) Rows(rows [][]string) *Delimited {
	d.rows = append(d.rows, rows...)
	return d
}

// Write writes the header line and every row to w.
func (d *Delimited) Write(w io.Writer) error {
	if len(d.headers) == 0 {
		return ErrEmptyHeaders
	}

	lines := make([]string, 0, len(d.rows)+1)
	lines = append(lines, strings.Join(d.headers, d.delimiter))
	for _, row := range d.rows {
		lines = append(lines, d.line(row))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func (d *Delimited) line(row []string) string {
	if !d.quoteAll {
		return strings.Join(row, d.delimiter)
	}
	quoted := make([]string, len(row))
	for i, v := range row {
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, d.delimiter)
}

// Bytes returns the output as bytes.
func (d *Delimited) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Attach sets the headers that make a browser save the response as filename.
func Attach(w http.ResponseWriter, filename, contentType string, size int) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if size >= 0 {
		w.Header().Set("Content-Length", fmt.Sprint(size))
	}
}
