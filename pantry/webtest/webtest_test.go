package webtest

import (
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func echo() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", r.Header.Get("Content-Type"))
		w.Header().Set("X-HX", r.Header.Get("HX-Target"))
		if c, err := r.Cookie("lang"); err == nil {
			w.Header().Set("X-Lang", c.Value)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(r.Method + " " + r.URL.RequestURI() + " " + string(b)))
	})
}

func TestRequest_Form(t *testing.T) {
	New(t, echo()).Post("/generate").
		Query("x", "1").
		Form(url.Values{"cnpjs": {"a"}}).
		HTMX("records").
		Cookie("lang", "en").
		Do().
		Status(http.StatusAccepted).
		ContentType("application/x-www-form-urlencoded").
		HeaderEquals("X-HX", "records").
		HeaderEquals("X-Lang", "en").
		BodyEquals("POST /generate?x=1 cnpjs=a")
}

func TestRequest_JSON(t *testing.T) {
	var got map[string]any
	resp := New(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.Copy(w, r.Body)
	})).Post("/api/records").JSON(map[string]string{"cnpjs": "1"}).Do()

	resp.StatusOK().ContentType("application/json").BodyContains(`"cnpjs"`).BodyNotContains("emails").JSON(&got)
	assert.Equal(t, "1", got["cnpjs"])
}

func TestEventually(t *testing.T) {
	var n atomic.Int32
	Eventually(t, func() bool { return n.Add(1) >= 3 }, time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}
