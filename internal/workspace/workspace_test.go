package workspace

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	runs     map[string]int
	records  int
	rejected map[string]int
	exports  map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		runs:     map[string]int{},
		rejected: map[string]int{},
		exports:  map[string]int{},
	}
}

func (f *fakeRecorder) RunFinished(outcome string, n int) {
	f.runs[outcome]++
	f.records += n
}
func (f *fakeRecorder) EntriesRejected(kind string, n int) { f.rejected[kind] += n }
func (f *fakeRecorder) FileExported(format string)         { f.exports[format]++ }

// newTestController uses a scheduler that never fires, so banners stay put.
func newTestController(t *testing.T) (*Controller, *fakeRecorder) {
	t.Helper()
	rec := newFakeRecorder()
	n := notify.New(0, nil, notify.WithScheduler(func(time.Duration, func()) {}))
	c, err := New(Options{Notifier: n, Metrics: rec})
	require.NoError(t, err)
	return c, rec
}

func messages(bs []notify.Banner) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Message
	}
	return out
}

func TestGenerate_Guards(t *testing.T) {
	tests := []struct {
		name    string
		form    Form
		outcome string
		notices []string
	}{
		{
			name:    "blank identifiers checked first",
			form:    Form{Identifiers: "  \n ", Emails: ""},
			outcome: OutcomeMissingIdentifiers,
			notices: []string{"Por favor, insira pelo menos um CNPJ."},
		},
		{
			name:    "blank emails",
			form:    Form{Identifiers: "11222333000181", Emails: "\n\t"},
			outcome: OutcomeMissingEmails,
			notices: []string{"Por favor, insira pelo menos um email."},
		},
		{
			name:    "no valid identifiers",
			form:    Form{Identifiers: "123\n00000000000000", Emails: "a@b.com"},
			outcome: OutcomeNoIdentifiers,
			notices: []string{
				"CNPJs inválidos encontrados: 123, 00000000000000",
				"Nenhum CNPJ válido encontrado.",
			},
		},
		{
			name:    "no valid emails",
			form:    Form{Identifiers: "11222333000181", Emails: "a@b\na.b.com"},
			outcome: OutcomeNoEmails,
			notices: []string{
				"Emails inválidos encontrados: a@b, a.b.com",
				"Nenhum email válido encontrado.",
			},
		},
		{
			name:    "identifiers fail before emails",
			form:    Form{Identifiers: "1", Emails: "x"},
			outcome: OutcomeNoIdentifiers,
			notices: []string{
				"CNPJs inválidos encontrados: 1",
				"Emails inválidos encontrados: x",
				"Nenhum CNPJ válido encontrado.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestController(t)
			res := c.Generate("pt-BR", tt.form)

			assert.False(t, res.OK())
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.notices, messages(res.Notices))
			assert.True(t, res.Records.Empty())
			assert.Equal(t, 1, rec.runs[tt.outcome])
			assert.Zero(t, rec.records)

			b, ok := c.Banner()
			require.True(t, ok)
			assert.Equal(t, notify.KindError, b.Kind)
			assert.Equal(t, tt.notices[len(tt.notices)-1], b.Message)
		})
	}
}

func TestGenerate_WarnsAndContinues(t *testing.T) {
	c, rec := newTestController(t)

	res := c.Generate("pt-BR", Form{
		Identifiers: "11.222.333/0001-81\n11111111111111",
		Emails:      "a@b.com",
		Action:      "ADD",
	})

	require.True(t, res.OK())
	assert.Equal(t, []string{"11222333000181"}, res.Identifiers.Valid)
	assert.Equal(t, []string{"11111111111111"}, res.Identifiers.Invalid)
	require.Equal(t, 1, res.Records.Len())
	assert.Equal(t, records.Record{
		User:            "a@b.com",
		Country:         "BR",
		VendorAccountID: "11222333000181",
		VendorID:        records.DefaultVendorID,
		VendorName:      "AMBEV",
		Action:          "ADD",
	}, res.Records.At(0))

	assert.Equal(t, []string{
		"CNPJs inválidos encontrados: 11111111111111",
		"1 registros gerados com sucesso!",
	}, messages(res.Notices))

	b, ok := c.Banner()
	require.True(t, ok)
	assert.Equal(t, notify.KindSuccess, b.Kind)

	assert.Equal(t, 1, rec.runs[OutcomeOK])
	assert.Equal(t, 1, rec.records)
	assert.Equal(t, 1, rec.rejected[KindIdentifier])
	assert.True(t, c.State().CanExport())
}

func TestGenerate_AbortKeepsPreviousRecords(t *testing.T) {
	c, _ := newTestController(t)

	first := c.Generate("pt-BR", Form{
		Identifiers: "11222333000181\n22333444000155",
		Emails:      "a@b.com\nc@d.com",
	})
	require.True(t, first.OK())
	require.Equal(t, 4, first.Records.Len())

	failed := c.Generate("pt-BR", Form{Identifiers: "nope", Emails: "a@b.com"})
	require.False(t, failed.OK())

	st := c.State()
	assert.Equal(t, 4, st.Records.Len())
	assert.Equal(t, "nope", st.Form.Identifiers, "form keeps what the user typed")
}

func TestGenerate_ReplacesPreviousRecords(t *testing.T) {
	c, _ := newTestController(t)

	c.Generate("pt-BR", Form{Identifiers: "11222333000181\n22333444000155", Emails: "a@b.com"})
	res := c.Generate("pt-BR", Form{Identifiers: "33444555000166", Emails: "x@y.org", VendorName: " acme ", Country: "ar"})

	require.True(t, res.OK())
	st := c.State()
	require.Equal(t, 1, st.Records.Len())
	r := st.Records.At(0)
	assert.Equal(t, "33444555000166", r.VendorAccountID)
	assert.Equal(t, "ACME", r.VendorName)
	assert.Equal(t, "AR", r.Country)
	assert.Equal(t, "ADD", r.Action, "blank action takes the first configured one")
}

func TestGenerate_FreeTextFields(t *testing.T) {
	c, _ := newTestController(t)

	long := strings.Repeat("x", 101)
	res := c.Generate("pt-BR", Form{Identifiers: "11222333000181", Emails: "a@b.com", VendorName: long, Country: "bra"})
	require.True(t, res.OK(), "%v", res.Notices)
	rec := res.Records.Records()[0]
	assert.Equal(t, strings.ToUpper(long), rec.VendorName)
	assert.Equal(t, "BRA", rec.Country)

	res = c.Generate("pt-BR", Form{Identifiers: "11222333000181", Emails: "a@b.com", Country: "B1"})
	require.True(t, res.OK())
	assert.Equal(t, "B1", res.Records.Records()[0].Country)
}

func TestGenerate_UnknownAction(t *testing.T) {
	c, rec := newTestController(t)

	res := c.Generate("pt-BR", Form{Identifiers: "11222333000181\n123", Emails: "a@b.com", Action: "DROP"})
	assert.Equal(t, OutcomeInvalidAction, res.Outcome)
	assert.True(t, res.Records.Empty())
	require.Len(t, res.Notices, 2)
	assert.Equal(t, "CNPJs inválidos encontrados: 123", res.Notices[0].Message)
	assert.Contains(t, res.Notices[1].Message, "ADD, REMOVE, UPDATE")
	assert.Equal(t, 1, rec.runs[OutcomeInvalidAction])
	assert.Equal(t, 1, rec.rejected[KindIdentifier])

	// Zero valid entries is reported before the action.
	res = c.Generate("pt-BR", Form{Identifiers: "123", Emails: "a@b.com", Action: "DROP"})
	assert.Equal(t, OutcomeNoIdentifiers, res.Outcome)
}

func TestGenerate_SizeLaw(t *testing.T) {
	c, _ := newTestController(t)

	res := c.Generate("pt-BR", Form{
		Identifiers: "11222333000181\n22333444000155\n33444555000166",
		Emails:      "a@b.com\nc@d.com\ne@f.com\ng@h.com",
	})
	require.True(t, res.OK())
	assert.Equal(t, 12, res.Records.Len())
	for _, r := range res.Records.Records() {
		assert.Equal(t, records.DefaultVendorID, r.VendorID)
	}
}

func TestGenerate_English(t *testing.T) {
	c, _ := newTestController(t)

	res := c.Generate("en", Form{Identifiers: "11222333000181", Emails: "a@b.com"})
	require.True(t, res.OK())
	assert.Equal(t, "1 records generated successfully!", res.Notices[0].Message)

	res = c.Generate("en", Form{})
	assert.Equal(t, "Please enter at least one CNPJ.", res.Notices[0].Message)
}

func TestNew_CustomVendorAndActions(t *testing.T) {
	c, err := New(Options{
		VendorID: "00000000-0000-4000-8000-000000000001",
		Actions:  []string{"GRANT", "REVOKE"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"GRANT", "REVOKE"}, c.Actions())
	assert.Equal(t, "GRANT", c.State().Form.Action)

	res := c.Generate("pt-BR", Form{Identifiers: "11222333000181", Emails: "a@b.com", Action: "REVOKE"})
	require.True(t, res.OK())
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", res.Records.At(0).VendorID)
	assert.Equal(t, "REVOKE", res.Records.At(0).Action)
}

func TestGenerate_ConfiguredDefaults(t *testing.T) {
	c, err := New(Options{VendorName: "Acme", Country: "ar"})
	require.NoError(t, err)

	res := c.Generate("pt-BR", Form{Identifiers: "11222333000181", Emails: "a@b.com", VendorName: "  "})
	require.True(t, res.OK())
	assert.Equal(t, "ACME", res.Records.At(0).VendorName)
	assert.Equal(t, "AR", res.Records.At(0).Country)

	res = c.Generate("pt-BR", Form{Identifiers: "11222333000181", Emails: "a@b.com", VendorName: "other", Country: "cl"})
	require.True(t, res.OK())
	assert.Equal(t, "OTHER", res.Records.At(0).VendorName)
	assert.Equal(t, "CL", res.Records.At(0).Country)
}

func TestFormatIdentifiers(t *testing.T) {
	c, _ := newTestController(t)

	out := c.FormatIdentifiers("11222333000181\nabc")
	assert.Equal(t, "11.222.333/0001-81\nabc", out)
	assert.Equal(t, out, c.State().Form.Identifiers)
}
