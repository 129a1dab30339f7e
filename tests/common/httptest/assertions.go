//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-scheduler/internal/handler/httperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status and, for 2xx with a target, decodes the JSON body.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "body: %s", w.Body.String()) {
		return
	}
	if expectedStatus < 200 || expectedStatus >= 300 || target == nil {
		return
	}
	AssertJSON(t, w)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

// AssertErrorResponse decodes an httperr body and checks its message contains msg.
// An empty msg only checks the status and shape.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, msg string) *httperr.Response {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "body: %s", w.Body.String())
	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	assert.NotEmpty(t, resp.Error.Message, "error responses always carry a message")
	if msg != "" {
		assert.Contains(t, resp.Error.Message, msg)
	}
	return &resp
}

// AssertConflict expects a 409 schedule conflict naming conflictWith, or no
// appointment when conflictWith is nil.
func AssertConflict(t *testing.T, w *httptest.ResponseRecorder, conflictWith *uuid.UUID, holiday bool) {
	t.Helper()

	AssertErrorResponse(t, w, http.StatusConflict, "Schedule conflict")
	detail := DecodeErrorDetail(t, w)
	assert.Equal(t, holiday, detail["holiday"])
	if conflictWith == nil {
		assert.NotContains(t, detail, "conflict_with")
		return
	}
	assert.Equal(t, conflictWith.String(), detail["conflict_with"])
}

// AssertValidationReason expects a 400 whose detail.reason mentions reason.
func AssertValidationReason(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()

	AssertErrorResponse(t, w, http.StatusBadRequest, "")
	got, _ := DecodeErrorDetail(t, w)["reason"].(string)
	assert.Contains(t, got, reason)
}
