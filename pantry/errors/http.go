// errors/http.go
package errors

import (
	"net/http"

	"github.com/dalemusser/vendorgrid/httputil"
	"go.uber.org/zap"
)

// Response is the JSON envelope for API errors.
type Response struct {
	Error *Error `json:"error"`
}

// Write sends err as JSON. Errors that map to 5xx are logged with their
// cause; the cause never reaches the client.
func Write(w http.ResponseWriter, err error, logger *zap.Logger) {
	e := From(err)
	if e.HTTPStatus() >= 500 && logger != nil {
		logger.Error("internal error",
			zap.String("code", e.Code),
			zap.String("message", e.Message),
			zap.Error(e.Err))
	}
	httputil.WriteJSON(w, e.HTTPStatus(), Response{Error: e})
}

// HandlerFunc is a handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts h to http.HandlerFunc, writing any returned error as JSON.
func (h HandlerFunc) Wrap(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			Write(w, err, logger)
		}
	}
}
