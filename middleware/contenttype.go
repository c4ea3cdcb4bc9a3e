// middleware/contenttype.go
package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/dalemusser/vendorgrid/httputil"
)

// RequireJSON rejects requests whose Content-Type is not application/json
// or a "+json" type with 415 and a JSON error body.
func RequireJSON() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			mt = strings.ToLower(mt)
			if err != nil || (mt != "application/json" && !strings.HasSuffix(mt, "+json")) {
				httputil.JSONError(w, http.StatusUnsupportedMediaType,
					"unsupported_media_type",
					"Content-Type must be application/json",
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
