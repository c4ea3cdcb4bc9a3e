// health/health.go
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dalemusser/vendorgrid/httputil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Check is one readiness probe. It returns nil when healthy.
type Check func(ctx context.Context) error

// Response is the JSON body of the health endpoint.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// checkTimeout bounds every probe.
const checkTimeout = 2 * time.Second

// Handler runs checks on each request. With no checks it is a plain
// liveness probe answering {"status":"ok"}; a failing check turns the
// answer into 503 with per-check results.
func Handler(checks map[string]Check, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(names) == 0 {
			httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		resp := Response{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			check := checks[name]
			if check == nil {
				resp.Checks[name] = "ok"
				continue
			}
			if err := check(ctx); err != nil {
				resp.Status = "error"
				resp.Checks[name] = "error: " + err.Error()
				logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
				continue
			}
			resp.Checks[name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	})
}

// Mount attaches GET /health to r.
func Mount(r chi.Router, checks map[string]Check, logger *zap.Logger) {
	r.Method(http.MethodGet, "/health", Handler(checks, logger))
}
