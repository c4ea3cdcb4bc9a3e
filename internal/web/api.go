package web

import (
	"errors"
	"net/http"

	"github.com/dalemusser/vendorgrid/httputil"
	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/dalemusser/vendorgrid/internal/workspace"
	apierr "github.com/dalemusser/vendorgrid/pantry/errors"
	"github.com/go-chi/chi/v5"
)

type recordsResponse struct {
	Count     int              `json:"count"`
	CanExport bool             `json:"can_export"`
	Records   []records.Record `json:"records"`
}

type generateResponse struct {
	Outcome string          `json:"outcome"`
	Notices []notify.Banner `json:"notices"`
	recordsResponse
}

func recordsBody(s records.Set) recordsResponse {
	return recordsResponse{Count: s.Len(), CanExport: !s.Empty(), Records: s.Records()}
}

// apiRecords returns the current record set.
func (h *Handler) apiRecords(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, recordsBody(h.ctrl.State().Records))
}

// apiGenerate runs the generator on a JSON form. Aborted runs answer 422
// with the banner that explains them.
func (h *Handler) apiGenerate() apierr.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var f workspace.Form
		if err := httputil.BindJSON(r, &f); err != nil {
			return apierr.BadRequest(err.Error())
		}

		res := h.ctrl.Generate(h.localizer(r).Locale(), f)
		if !res.OK() {
			msg := ""
			if n := len(res.Notices); n > 0 {
				msg = res.Notices[n-1].Message
			}
			return apierr.Validation(msg).
				WithDetail("outcome", res.Outcome).
				WithDetail("notices", res.Notices)
		}

		httputil.WriteJSON(w, http.StatusOK, generateResponse{
			Outcome:         res.Outcome,
			Notices:         res.Notices,
			recordsResponse: recordsBody(res.Records),
		})
		return nil
	}
}

// apiBanner returns the banner on display, or 204 when there is none.
func (h *Handler) apiBanner(w http.ResponseWriter, _ *http.Request) {
	b, ok := h.ctrl.Banner()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

// apiExport is the download with JSON errors.
func (h *Handler) apiExport() apierr.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		loc := h.localizer(r)
		f, err := workspace.ParseFormat(chi.URLParam(r, "format"))
		if err != nil {
			return apierr.NotFound(err.Error())
		}
		dl, err := h.ctrl.Export(loc.Locale(), f)
		if errors.Is(err, workspace.ErrNoData) {
			return apierr.New(apierr.CodeNoData, loc.T(workspace.MsgExportEmpty), http.StatusConflict)
		}
		if err != nil {
			return err
		}
		h.writeDownload(w, dl)
		return nil
	}
}
