// logging/requestmw.go
package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger logs one entry per request. Requests to quiet paths (the
// banner poll, health and metrics scrapes) are logged at debug so they do
// not drown out real traffic.
func RequestLogger(logger *zap.Logger, quiet ...string) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	quietSet := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		quietSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			level := zapcore.InfoLevel
			if _, ok := quietSet[r.URL.Path]; ok {
				level = zapcore.DebugLevel
			}
			if ww.Status() >= http.StatusInternalServerError {
				level = zapcore.WarnLevel
			}

			if ce := logger.Check(level, "http_request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.String("remote_ip", r.RemoteAddr),
					zap.String("user_agent", r.UserAgent()),
					zap.Bool("htmx", r.Header.Get("HX-Request") != ""),
					zap.Duration("latency", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}
		})
	}
}
