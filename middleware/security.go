// middleware/security.go
package middleware

import (
	"net/http"

	"github.com/dalemusser/vendorgrid/config"
)

// DefaultCSP allows only same-origin scripts, styles and form targets. The
// page loads its own script and stylesheet, never inline code.
const DefaultCSP = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; " +
	"form-action 'self'; frame-ancestors 'none'; base-uri 'none'; object-src 'none'"

// SecurityHeadersOptions configures SecurityHeaders. An empty field leaves
// its header unset.
type SecurityHeadersOptions struct {
	XFrameOptions         string
	XContentTypeOptions   string
	ReferrerPolicy        string
	ContentSecurityPolicy string
	PermissionsPolicy     string

	// NoStore sends Cache-Control: no-store so pasted emails never land in
	// a shared cache.
	NoStore bool
}

// DefaultSecurityHeadersOptions returns the headers vendorgrid serves.
func DefaultSecurityHeadersOptions() SecurityHeadersOptions {
	return SecurityHeadersOptions{
		XFrameOptions:         "DENY",
		XContentTypeOptions:   "nosniff",
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: DefaultCSP,
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
		NoStore:               true,
	}
}

// SecurityHeaders sets the configured headers on every response.
func SecurityHeaders(opts SecurityHeadersOptions) func(next http.Handler) http.Handler {
	headers := map[string]string{
		"X-Frame-Options":         opts.XFrameOptions,
		"X-Content-Type-Options":  opts.XContentTypeOptions,
		"Referrer-Policy":         opts.ReferrerPolicy,
		"Content-Security-Policy": opts.ContentSecurityPolicy,
		"Permissions-Policy":      opts.PermissionsPolicy,
	}
	if opts.NoStore {
		headers["Cache-Control"] = "no-store"
	}
	for k, v := range headers {
		if v == "" {
			delete(headers, k)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersFromConfig applies the defaults when
// enable_security_headers is on and is a no-op otherwise.
func SecurityHeadersFromConfig(coreCfg *config.CoreConfig) func(next http.Handler) http.Handler {
	if coreCfg == nil || !coreCfg.EnableSecurityHeaders {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return SecurityHeaders(DefaultSecurityHeadersOptions())
}
