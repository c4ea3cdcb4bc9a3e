// middleware/compress.go
package middleware

import (
	"net/http"

	"github.com/dalemusser/vendorgrid/config"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// compressibleTypes excludes the downloads; they carry an exact
// Content-Length.
var compressibleTypes = []string{
	"text/html", "text/css", "application/javascript", "application/json", "text/plain",
}

// CompressFromConfig returns chi's gzip/deflate middleware at the configured
// level, or a no-op when compression is disabled. Out-of-range levels are
// clamped with a warning.
func CompressFromConfig(coreCfg *config.CoreConfig, logger *zap.Logger) func(next http.Handler) http.Handler {
	if coreCfg == nil || !coreCfg.EnableCompression {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	level := coreCfg.CompressionLevel
	if level < 1 || level > 9 {
		clamped := min(max(level, 1), 9)
		if logger != nil {
			logger.Warn("compression level clamped", zap.Int("from", level), zap.Int("to", clamped))
		}
		level = clamped
	}
	return middleware.Compress(level, compressibleTypes...)
}
