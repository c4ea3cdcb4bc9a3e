package export

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimited_QuoteAll(t *testing.T) {
	out, err := NewDelimited().
		QuoteAll().
		Headers("a", "b").
		Rows([][]string{{"1", "x y"}, {"2", ""}}).
		Bytes()
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"1\",\"x y\"\n\"2\",\"\"", string(out))
}

func TestDelimited_QuotesAreNotEscaped(t *testing.T) {
	out, err := NewDelimited().QuoteAll().Headers("v").Rows([][]string{{`say "hi"`}}).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "v\n\"say \"hi\"\"", string(out))
}

func TestDelimited_Tab(t *testing.T) {
	out, err := NewDelimited().
		TabDelimited().
		Headers("a", "b").
		Rows([][]string{{"1", "2"}}).
		Rows([][]string{{"3", "4"}}).
		Bytes()
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n1\t2\n3\t4", string(out))
}

func TestDelimited_HeaderOnly(t *testing.T) {
	out, err := NewDelimited().Headers("a", "b").Bytes()
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(out))
}

func TestDelimited_RequiresHeaders(t *testing.T) {
	_, err := NewDelimited().Rows([][]string{{"1"}}).Bytes()
	assert.ErrorIs(t, err, ErrEmptyHeaders)
}

func TestAttach(t *testing.T) {
	rec := httptest.NewRecorder()
	Attach(rec, "out.csv", "text/csv", 3)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="out.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("Content-Length"))

	rec = httptest.NewRecorder()
	Attach(rec, "out.csv", "text/csv", -1)
	assert.Empty(t, rec.Header().Get("Content-Length"))
}
