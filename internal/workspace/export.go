package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/dalemusser/vendorgrid/pantry/export"
	"go.uber.org/zap"
)

// Default download names. The tab-separated file keeps a spreadsheet
// extension even though its content is plain text.
const (
	DefaultCSVFilename = "cnpj-data.csv"
	DefaultTSVFilename = "cnpj-data.xlsx"
)

// Format is a download format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("workspace: unknown export format")

// ErrNoData is returned by Export when there are no records.
var ErrNoData = export.ErrNoData

// ParseFormat accepts "csv", and "tsv" or its aliases "xlsx" and "excel".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "tsv", "xlsx", "excel":
		return FormatTSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type the file is served with.
func (f Format) ContentType() string {
	if f == FormatTSV {
		return "application/vnd.ms-excel"
	}
	return "text/csv"
}

// Download is a rendered export file.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
	Banner      notify.Banner
}

// Encode renders set in format f. It returns ErrNoData for an empty set.
func Encode(set records.Set, f Format) ([]byte, error) {
	if set.Empty() {
		return nil, ErrNoData
	}
	d := export.NewDelimited().Headers(records.Columns...).Rows(set.Rows())
	switch f {
	case FormatCSV:
		d.QuoteAll()
	case FormatTSV:
		d.TabDelimited()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	return d.Bytes()
}

// Export renders the current record set. An empty set shows the
// "nothing to export" banner and returns ErrNoData; success shows the
// download banner.
func (c *Controller) Export(locale string, f Format) (Download, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, err := Encode(c.state.Records, f)
	if errors.Is(err, ErrNoData) {
		c.notifier.Error(c.t(locale, MsgExportEmpty))
		c.logger.Info("export refused, no records", zap.String("format", string(f)))
		return Download{}, err
	}
	if err != nil {
		return Download{}, err
	}

	name := c.files[f]
	dl := Download{
		Filename:    name,
		ContentType: f.ContentType(),
		Body:        body,
		Banner:      c.notifier.Success(c.t(locale, MsgExported, name)),
	}
	c.metrics.FileExported(string(f))
	c.logger.Info("records exported",
		zap.String("format", string(f)),
		zap.String("filename", name),
		zap.Int("records", c.state.Records.Len()),
		zap.Int("bytes", len(body)))
	return dl, nil
}
