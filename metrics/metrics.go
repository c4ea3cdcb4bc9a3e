// metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// reqDuration is labeled by route pattern, method and status.
var reqDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: []float64{0.005, 0.025, 0.1, 0.5, 2},
	},
	[]string{"path", "method", "status"},
)

// RegisterDefault registers the Go runtime and process collectors, the HTTP
// request histogram and the vendorgrid domain counters. Call it once at
// startup; calling it again is harmless.
func RegisterDefault(logger *zap.Logger) {
	mustRegister(logger, "Go collector", collectors.NewGoCollector())
	mustRegister(logger, "process collector", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mustRegister(logger, "HTTP request histogram", reqDuration)

	for _, c := range domainCollectors {
		mustRegister(logger, "domain counter", c)
	}
}

// mustRegister ignores AlreadyRegisteredError and treats anything else as
// fatal.
func mustRegister(logger *zap.Logger, name string, c prometheus.Collector) {
	err := prometheus.Register(c)
	if err == nil {
		return
	}
	if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return
	}
	if logger != nil {
		logger.Fatal("failed to register "+name, zap.Error(err))
	}
	panic("metrics: failed to register " + name + ": " + err.Error())
}

const maxPathLabelLength = 256

// HTTPMetrics records request duration into http_request_duration_seconds.
// The path label is the chi route pattern, so "/export/{format}" stays one
// series. Place it after the recoverer so panics are recorded as 500.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		protoMajor := r.ProtoMajor
		if protoMajor < 1 {
			protoMajor = 1
		}
		ww := middleware.NewWrapResponseWriter(w, protoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status < 100 || status > 599 {
			status = http.StatusInternalServerError
		}

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		if len(path) > maxPathLabelLength {
			path = truncateUTF8(path, maxPathLabelLength-3) + "..."
		}

		reqDuration.WithLabelValues(path, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// truncateUTF8 cuts s to at most maxBytes without splitting a rune.
func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
