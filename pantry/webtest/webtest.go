// Package webtest drives an http.Handler in-process with a fluent request
// builder and chainable response assertions.
package webtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// Client sends requests to one handler.
type Client struct {
	t       *testing.T
	handler http.Handler
}

// New returns a Client for h.
func New(t *testing.T, h http.Handler) *Client {
	return &Client{t: t, handler: h}
}

// Request starts a request builder.
func (c *Client) Request(method, path string) *Request {
	return &Request{c: c, method: method, path: path, header: make(http.Header), query: make(url.Values)}
}

func (c *Client) Get(path string) *Request  { return c.Request(http.MethodGet, path) }
func (c *Client) Post(path string) *Request { return c.Request(http.MethodPost, path) }

// Request builds one request.
type Request struct {
	c      *Client
	method string
	path   string
	header http.Header
	query  url.Values
	body   io.Reader
}

// Header sets a request header.
func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)
	return r
}

// Query sets a query parameter.
func (r *Request) Query(key, value string) *Request {
	r.query.Set(key, value)
	return r
}

// BodyString sets a raw body.
func (r *Request) BodyString(body string) *Request {
	r.body = strings.NewReader(body)
	return r
}

// JSON encodes v as the body.
func (r *Request) JSON(v any) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		r.c.t.Fatalf("marshal JSON: %v", err)
	}
	r.body = bytes.NewReader(data)
	r.header.Set("Content-Type", "application/json")
	return r
}

// Form sends data url-encoded.
func (r *Request) Form(data url.Values) *Request {
	r.body = strings.NewReader(data.Encode())
	r.header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// HTMX marks the request as an HTMX request aimed at target.
func (r *Request) HTMX(target string) *Request {
	r.header.Set("HX-Request", "true")
	if target != "" {
		r.header.Set("HX-Target", target)
	}
	return r
}

// Cookie adds a cookie.
func (r *Request) Cookie(name, value string) *Request {
	c := (&http.Cookie{Name: name, Value: value}).String()
	if existing := r.header.Get("Cookie"); existing != "" {
		c = existing + "; " + c
	}
	r.header.Set("Cookie", c)
	return r
}

// Build returns the request without running it.
func (r *Request) Build() *http.Request {
	path := r.path
	if len(r.query) > 0 {
		path += "?" + r.query.Encode()
	}
	req := httptest.NewRequest(r.method, path, r.body)
	for k, v := range r.header {
		req.Header[k] = v
	}
	return req
}

// Do runs the request against the client's handler.
func (r *Request) Do() *Response {
	r.c.t.Helper()
	w := httptest.NewRecorder()
	r.c.handler.ServeHTTP(w, r.Build())
	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		r.c.t.Fatalf("read body: %v", err)
	}
	return &Response{Response: resp, Body: body, t: r.c.t}
}

// Response wraps the recorded response.
type Response struct {
	*http.Response
	Body []byte
	t    *testing.T
}

// Status asserts the status code.
func (r *Response) Status(code int) *Response {
	r.t.Helper()
	if r.StatusCode != code {
		r.t.Errorf("expected status %d, got %d\nBody: %s", code, r.StatusCode, r.Body)
	}
	return r
}

func (r *Response) StatusOK() *Response { return r.Status(http.StatusOK) }

// HeaderEquals asserts a header value.
func (r *Response) HeaderEquals(key, expected string) *Response {
	r.t.Helper()
	if got := r.Header.Get(key); got != expected {
		r.t.Errorf("expected header %s=%q, got %q", key, expected, got)
	}
	return r
}

// ContentType asserts the Content-Type contains expected.
func (r *Response) ContentType(expected string) *Response {
	r.t.Helper()
	if got := r.Header.Get("Content-Type"); !strings.Contains(got, expected) {
		r.t.Errorf("expected Content-Type to contain %q, got %q", expected, got)
	}
	return r
}

// BodyEquals asserts the exact body.
func (r *Response) BodyEquals(expected string) *Response {
	r.t.Helper()
	if string(r.Body) != expected {
		r.t.Errorf("expected body %q, got %q", expected, r.Body)
	}
	return r
}

// BodyContains asserts the body contains every substring.
func (r *Response) BodyContains(substrs ...string) *Response {
	r.t.Helper()
	for _, s := range substrs {
		if !strings.Contains(string(r.Body), s) {
			r.t.Errorf("expected body to contain %q, got %q", s, r.Body)
		}
	}
	return r
}

// BodyNotContains asserts the body contains none of substrs.
func (r *Response) BodyNotContains(substrs ...string) *Response {
	r.t.Helper()
	for _, s := range substrs {
		if strings.Contains(string(r.Body), s) {
			r.t.Errorf("expected body not to contain %q, got %q", s, r.Body)
		}
	}
	return r
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) *Response {
	r.t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		r.t.Fatalf("unmarshal JSON: %v\nBody: %s", err, r.Body)
	}
	return r
}

// String returns the body.
func (r *Response) String() string { return string(r.Body) }

// Eventually polls check until it passes or timeout elapses.
func Eventually(t *testing.T, check func() bool, timeout, interval time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(interval)
	}
	t.Fatal("condition not met within timeout")
}
