package transport

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

func TestWriteError_statusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.NewBadRequestError("x"), 400},
		{model.NewUnauthorizedError("x"), 401},
		{model.NewForbiddenError("x"), 403},
		{model.NewNotFoundError("x"), 404},
		{model.NewConflictError("x"), 409},
		{model.NewValidationError(nil), 422},
		{model.NewInternalError(), 500},
		{model.NewUpstreamError("x"), 502},
		{model.NewSignatureInvalidError(), 400},
		{model.NewDuplicateEventError("evt-1"), 409},
	}

	for _, tc := range tests {
		ee := tc.err.(*model.ErrorEnvelope)
		t.Run(ee.Code, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)
			if w.Code != tc.status {
				t.Errorf("status = %d, want %d", w.Code, tc.status)
			}
		})
	}
}

func TestWriteError_wrapsPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("boom"))

	if w.Code != 500 {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body struct {
		Error *model.ErrorEnvelope `json:"error"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Error == nil || body.Error.Code != model.ErrInternalError {
		t.Errorf("error = %+v, want INTERNAL_ERROR envelope", body.Error)
	}
}

func TestWriteJSON_headers(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, 201, map[string]string{"ok": "yes"})

	if w.Code != 201 {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type = %q", ct)
	}
	if nosniff := w.Header().Get("X-Content-Type-Options"); nosniff != "nosniff" {
		t.Errorf("nosniff header = %q", nosniff)
	}
}
