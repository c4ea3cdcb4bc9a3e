package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBundle() *Bundle {
	b := NewBundle("pt-BR")
	b.AddLocale("pt-BR", map[string]string{
		"hello": "Olá",
		"count": "%d registros",
		"only":  "só em português",
	})
	b.AddLocale("en", map[string]string{
		"hello": "Hello",
		"count": "%d records",
	})
	return b
}

func TestBundleT(t *testing.T) {
	b := newTestBundle()

	assert.Equal(t, "Olá", b.T("pt-BR", "hello"))
	assert.Equal(t, "Hello", b.T("en", "hello"))
	assert.Equal(t, "3 records", b.T("en", "count", 3))
	assert.Equal(t, "só em português", b.T("en", "only"), "falls back to default locale")
	assert.Equal(t, "missing", b.T("en", "missing"), "missing key returns key")
}

func TestBundleMatch(t *testing.T) {
	b := newTestBundle()

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"empty", nil, "pt-BR"},
		{"exact en", []string{"en"}, "en"},
		{"regional en", []string{"en-GB"}, "en"},
		{"portuguese", []string{"pt"}, "pt-BR"},
		{"quality order", []string{"fr;q=0.9, en;q=0.8"}, "en"},
		{"unknown", []string{"ja"}, "pt-BR"},
		{"garbage", []string{";;;"}, "pt-BR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Match(tt.prefs...))
		})
	}
}

func TestBundleLocales(t *testing.T) {
	b := newTestBundle()
	assert.Equal(t, []string{"en", "pt-BR"}, b.Locales())
	assert.True(t, b.HasLocale("en"))
	assert.False(t, b.HasLocale("fr"))
}

func TestMiddleware(t *testing.T) {
	b := newTestBundle()
	var got string
	h := Middleware(DefaultMiddlewareConfig(b))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := FromContext(r.Context())
		require.NotNil(t, l)
		got = l.T("hello")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "Hello", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "Olá", got)

	req = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "Hello", got, "query wins over header")
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "en", rec.Result().Cookies()[0].Value)
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, FromContext(req.Context()))
}
