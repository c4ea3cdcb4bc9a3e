package middleware

import (
	"net/http"
	"strings"

	"github.com/dalemusser/vendorgrid/httputil"
	"go.uber.org/zap"
)

// ErrorPage renders an HTML error page for status.
type ErrorPage func(w http.ResponseWriter, r *http.Request, status int)

// wantsJSON is true for API paths and clients that only accept JSON.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// NotFoundHandler logs a 404 and answers with page, or with a JSON error for
// API requests or when page is nil. Pass it to chi.Router.NotFound.
func NotFoundHandler(logger *zap.Logger, page ErrorPage) http.HandlerFunc {
	return errorHandler(logger, page, http.StatusNotFound, "not_found",
		"The requested resource was not found")
}

// MethodNotAllowedHandler is the 405 counterpart of NotFoundHandler.
func MethodNotAllowedHandler(logger *zap.Logger, page ErrorPage) http.HandlerFunc {
	return errorHandler(logger, page, http.StatusMethodNotAllowed, "method_not_allowed",
		"The requested HTTP method is not allowed for this resource")
}

func errorHandler(logger *zap.Logger, page ErrorPage, status int, code, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if logger != nil {
			logger.Info(code,
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_ip", r.RemoteAddr),
			)
		}
		if page == nil || wantsJSON(r) {
			httputil.JSONError(w, status, code, msg)
			return
		}
		page(w, r, status)
	}
}
