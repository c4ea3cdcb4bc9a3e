// templates/adapter.go
package templates

import (
	"net/http"

	"go.uber.org/zap"
)

var (
	engine *Engine
	logger = zap.NewNop()
)

// UseEngine installs the engine and logger used by the Render helpers.
func UseEngine(e *Engine, l *zap.Logger) {
	engine = e
	if l != nil {
		logger = l
	}
}

// Render writes a full page with status 200.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus writes a full page with the given status.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	write(w, status, "page", name, func(e *Engine, w http.ResponseWriter) error {
		return e.Execute(w, name, data)
	})
}

// RenderSnippet writes a partial by name, e.g. "records_table".
func RenderSnippet(w http.ResponseWriter, name string, data any) {
	write(w, http.StatusOK, "snippet", name, func(e *Engine, w http.ResponseWriter) error {
		return e.Execute(w, name, data)
	})
}

// RenderAutoMap answers HTMX requests with the snippet mapped to their
// HX-Target, or the page's content block when the target is "content".
// Everything else gets the full page.
func RenderAutoMap(w http.ResponseWriter, r *http.Request, page string, targets map[string]string, data any) {
	if r.Header.Get("HX-Request") != "" {
		target := r.Header.Get("HX-Target")
		if snip, ok := targets[target]; ok && snip != "" {
			RenderSnippet(w, snip, data)
			return
		}
		if target == "content" {
			write(w, http.StatusOK, "content", page, func(e *Engine, w http.ResponseWriter) error {
				return e.ExecuteContent(w, page, data)
			})
			return
		}
	}
	Render(w, r, page, data)
}

// write buffers through the engine so a template error still yields a
// clean 500.
func write(w http.ResponseWriter, status int, kind, name string, exec func(*Engine, http.ResponseWriter) error) {
	if engine == nil {
		logger.Error("render called before engine installed", zap.String(kind, name))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	rw := &deferredWriter{ResponseWriter: w, status: status}
	if err := exec(engine, rw); err != nil {
		logger.Error("template render failed", zap.String(kind, name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
	}
}

// deferredWriter sends the header on first Write, so nothing is committed
// when execution fails before producing output.
type deferredWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (d *deferredWriter) Write(b []byte) (int, error) {
	if !d.wroteHeader {
		d.wroteHeader = true
		if d.Header().Get("Content-Type") == "" {
			d.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		d.ResponseWriter.WriteHeader(d.status)
	}
	return d.ResponseWriter.Write(b)
}
