// router/router.go
package router

import (
	"net/http"

	"github.com/dalemusser/vendorgrid/config"
	"github.com/dalemusser/vendorgrid/logging"
	"github.com/dalemusser/vendorgrid/metrics"
	"github.com/dalemusser/vendorgrid/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options are the app-level pieces of the stack.
type Options struct {
	// ErrorPage renders HTML 404/405 pages. nil answers JSON everywhere.
	ErrorPage middleware.ErrorPage
	// QuietPaths are logged at debug, e.g. the banner poll.
	QuietPaths []string
	// Middleware runs after the standard stack and before any route.
	Middleware []func(http.Handler) http.Handler
}

// New creates a chi.Router with the standard middleware stack:
//   - RequestID, RealIP
//   - Recoverer (panic -> 500)
//   - metrics, request logging
//   - security headers and compression, when enabled
//   - body size limit
//   - opts.Middleware
//   - NotFound / MethodNotAllowed handlers
//
// Routes are left to the caller.
func New(coreCfg *config.CoreConfig, logger *zap.Logger, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))

	r.Use(metrics.HTTPMetrics)
	r.Use(logging.RequestLogger(logger, opts.QuietPaths...))

	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))
	r.Use(middleware.CompressFromConfig(coreCfg, logger))
	r.Use(middleware.LimitBodySize(coreCfg.MaxRequestBodyBytes))

	for _, mw := range opts.Middleware {
		r.Use(mw)
	}

	r.NotFound(middleware.NotFoundHandler(logger, opts.ErrorPage))
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler(logger, opts.ErrorPage))

	return r
}
