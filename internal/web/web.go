// Package web serves the generator page, its HTMX fragments, the file
// downloads and a small JSON API over the shared workspace.
package web

import (
	"errors"
	"net/http"

	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/dalemusser/vendorgrid/internal/workspace"
	"github.com/dalemusser/vendorgrid/middleware"
	"github.com/dalemusser/vendorgrid/pantry/export"
	"github.com/dalemusser/vendorgrid/pantry/i18n"
	"github.com/dalemusser/vendorgrid/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the dependencies of every route.
type Handler struct {
	ctrl   *workspace.Controller
	logger *zap.Logger
}

// New creates a Handler for ctrl.
func New(ctrl *workspace.Controller, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{ctrl: ctrl, logger: logger}
}

// Localize resolves the request locale from ?lang=, the lang cookie and
// Accept-Language, in that order. Install it before any route.
func (h *Handler) Localize() func(http.Handler) http.Handler {
	return i18n.Middleware(i18n.DefaultMiddlewareConfig(h.ctrl.Messages()))
}

// Routes mounts the page, its fragments, the downloads, the static assets
// and the JSON API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.index)
	r.Post("/generate", h.generate)
	r.Post("/identifiers/format", h.formatIdentifiers)
	r.Get("/banner", h.banner)
	r.Get("/export/{format}", h.export)
	r.Handle("/static/*", staticHandler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/records", h.apiRecords)
		api.With(middleware.RequireJSON()).Post("/records", h.apiGenerate().Wrap(h.logger))
		api.Get("/banner", h.apiBanner)
		api.Get("/export/{format}", h.apiExport().Wrap(h.logger))
	})
}

// workspaceTargets maps HX-Target ids to the fragment that fills them.
var workspaceTargets = map[string]string{
	"workspace": "workspace",
	"records":   "records_table",
	"banner":    "banner",
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	templates.RenderAutoMap(w, r, "index", workspaceTargets, h.page(h.localizer(r)))
}

// generate runs the generator. HTMX requests get the refreshed workspace
// fragment; plain form posts are redirected back to the page.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Info("bad generate form", zap.Error(err))
		h.ErrorPage(w, r, http.StatusBadRequest)
		return
	}
	loc := h.localizer(r)
	h.ctrl.Generate(loc.Locale(), workspace.Form{
		Identifiers: r.PostForm.Get("cnpjs"),
		Emails:      r.PostForm.Get("emails"),
		Action:      r.PostForm.Get("action"),
		VendorName:  r.PostForm.Get("vendorName"),
		Country:     r.PostForm.Get("country"),
	})

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	templates.RenderAutoMap(w, r, "index", workspaceTargets, h.page(loc))
}

// formatIdentifiers punctuates the identifier text when the field loses
// focus.
func (h *Handler) formatIdentifiers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrorPage(w, r, http.StatusBadRequest)
		return
	}
	h.ctrl.FormatIdentifiers(r.PostForm.Get("cnpjs"))

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	templates.RenderSnippet(w, "identifiers_field", h.page(h.localizer(r)))
}

// banner is polled by the page; it answers with whatever is on display.
func (h *Handler) banner(w http.ResponseWriter, r *http.Request) {
	templates.RenderSnippet(w, "banner", h.page(h.localizer(r)))
}

// export streams the current records as a download. With nothing to export
// the user is sent back to the page, where the banner explains why.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	f, err := workspace.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.ErrorPage(w, r, http.StatusNotFound)
		return
	}
	dl, err := h.ctrl.Export(h.localizer(r).Locale(), f)
	switch {
	case errors.Is(err, workspace.ErrNoData):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		h.logger.Error("export failed", zap.String("format", string(f)), zap.Error(err))
		h.ErrorPage(w, r, http.StatusInternalServerError)
		return
	}
	h.writeDownload(w, dl)
}

func (h *Handler) writeDownload(w http.ResponseWriter, dl workspace.Download) {
	export.Attach(w, dl.Filename, dl.ContentType, len(dl.Body))
	if _, err := w.Write(dl.Body); err != nil {
		h.logger.Warn("download interrupted", zap.String("filename", dl.Filename), zap.Error(err))
	}
}

var errorKeys = map[int]string{
	http.StatusBadRequest:       "error.bad_request",
	http.StatusNotFound:         "error.not_found",
	http.StatusMethodNotAllowed: "error.method",
}

// ErrorPage renders the localized HTML error page. It satisfies
// middleware.ErrorPage.
func (h *Handler) ErrorPage(w http.ResponseWriter, r *http.Request, status int) {
	data := h.page(h.localizer(r))
	data.Status = status
	data.MessageKey = "error.internal"
	if key, ok := errorKeys[status]; ok {
		data.MessageKey = key
	}
	templates.RenderStatus(w, r, status, "error", data)
}

func (h *Handler) localizer(r *http.Request) *i18n.Localizer {
	if l := i18n.FromContext(r.Context()); l != nil {
		return l
	}
	b := h.ctrl.Messages()
	return b.Localizer(b.DefaultLocale())
}

func (h *Handler) page(loc *i18n.Localizer) pageData {
	st := h.ctrl.State()
	d := pageData{
		Loc:     loc,
		Locale:  loc.Locale(),
		Locales: h.ctrl.Messages().Locales(),
		State:   st,
		Actions: h.ctrl.Actions(),
		Columns: records.Columns,
		Rows:    st.Records.Rows(),
	}
	if b, ok := h.ctrl.Banner(); ok {
		d.Banner = &b
	}
	return d
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") != ""
}
