// i18n/middleware.go
package i18n

import (
	"context"
	"net/http"
)

// LocaleDetector detects the locale from an HTTP request.
type LocaleDetector func(r *http.Request) string

// MiddlewareConfig configures the i18n middleware.
type MiddlewareConfig struct {
	// Bundle is the translation bundle to use.
	Bundle *Bundle

	// Detectors are locale detection strategies, tried in order.
	// First non-empty result is used.
	// Default: QueryDetector, CookieDetector, HeaderDetector
	Detectors []LocaleDetector

	// CookieName is the name of the locale cookie.
	// Default: "lang"
	CookieName string

	// QueryParam is the query parameter for locale.
	// Default: "lang"
	QueryParam string

	// SetCookie persists an explicit ?lang= choice in a cookie.
	SetCookie bool
}

// DefaultMiddlewareConfig returns sensible defaults.
func DefaultMiddlewareConfig(bundle *Bundle) MiddlewareConfig {
	return MiddlewareConfig{
		Bundle:     bundle,
		CookieName: "lang",
		QueryParam: "lang",
		SetCookie:  true,
	}
}

// Middleware creates HTTP middleware that detects locale and adds a Localizer to context.
func Middleware(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "lang"
	}
	if cfg.QueryParam == "" {
		cfg.QueryParam = "lang"
	}
	if len(cfg.Detectors) == 0 {
		cfg.Detectors = []LocaleDetector{
			QueryDetector(cfg.QueryParam),
			CookieDetector(cfg.CookieName),
			HeaderDetector(),
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := cfg.Bundle.Match(detectLocale(r, cfg.Detectors))

			if cfg.SetCookie && r.URL.Query().Get(cfg.QueryParam) != "" {
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    locale,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithLocalizer(r.Context(), cfg.Bundle.Localizer(locale))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, detectors []LocaleDetector) string {
	for _, detector := range detectors {
		if locale := detector(r); locale != "" {
			return locale
		}
	}
	return ""
}

// QueryDetector detects locale from a query parameter.
func QueryDetector(param string) LocaleDetector {
	return func(r *http.Request) string {
		return r.URL.Query().Get(param)
	}
}

// CookieDetector detects locale from a cookie.
func CookieDetector(name string) LocaleDetector {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// HeaderDetector returns the raw Accept-Language header; quality values are
// resolved by Bundle.Match.
func HeaderDetector() LocaleDetector {
	return func(r *http.Request) string {
		return r.Header.Get("Accept-Language")
	}
}

type ctxKey struct{}

// WithLocalizer stores l in ctx.
func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request's Localizer, or nil if the middleware did
// not run.
func FromContext(ctx context.Context) *Localizer {
	l, _ := ctx.Value(ctxKey{}).(*Localizer)
	return l
}
