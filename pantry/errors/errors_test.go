package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	e := NotFound("no such format")
	wrapped := stderrors.Join(stderrors.New("ctx"), e)
	assert.Same(t, e, From(wrapped))

	cause := stderrors.New("disk on fire")
	got := From(cause)
	assert.Equal(t, CodeInternalError, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus())
	assert.ErrorIs(t, got, cause)
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "bad_request: oops", BadRequest("oops").Error())
	assert.Equal(t, "internal_error: x: boom", Wrap(stderrors.New("boom"), CodeInternalError, "x", 500).Error())
	assert.Equal(t, http.StatusInternalServerError, (&Error{}).HTTPStatus())
}

func TestHandlerFunc_Wrap(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	h := HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		if r.URL.Query().Get("fail") == "internal" {
			return stderrors.New("secret cause")
		}
		return Validation("country must be exactly 2 characters").WithDetail("field", "country")
	}).Wrap(logger)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, CodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "country", resp.Error.Details["field"])
	assert.Equal(t, 0, logs.Len())

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/?fail=internal", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret cause")
	assert.Equal(t, 1, logs.Len())
}
