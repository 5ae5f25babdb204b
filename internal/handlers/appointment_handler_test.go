package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/redislock"
)

func writeError(t *testing.T, err error) (int, httperr.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	writeAppointmentError(c, err)

	var env httperr.Envelope
	if derr := json.Unmarshal(rec.Body.Bytes(), &env); derr != nil {
		t.Fatalf("decode response: %v", derr)
	}
	return rec.Code, env
}

func TestWriteAppointmentErrorOverlapIsBadRequest(t *testing.T) {
	status, env := writeError(t, httperr.ErrBusiness("OVERLAP"))

	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for overlap, got %d", status)
	}
	if env.Code == nil || *env.Code != "OVERLAP" {
		t.Fatalf("expected code OVERLAP, got %v", env.Code)
	}
}

func TestWriteAppointmentErrorMappings(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{httperr.ErrBusiness("MASTER_NOT_FOUND"), http.StatusNotFound, "MASTER_NOT_FOUND"},
		{httperr.ErrBusiness("PAST_DATE"), http.StatusBadRequest, "PAST_DATE"},
		{redislock.ErrLockNotAcquired, http.StatusConflict, "BUSY"},
	}
	for _, tc := range cases {
		status, env := writeError(t, tc.err)
		if status != tc.wantStatus {
			t.Fatalf("%s: expected %d, got %d", tc.wantCode, tc.wantStatus, status)
		}
		if env.Code == nil || *env.Code != tc.wantCode {
			t.Fatalf("%s: unexpected code %v", tc.wantCode, env.Code)
		}
	}
}

func TestWriteAppointmentErrorUnknownIsInternal(t *testing.T) {
	status, _ := writeError(t, errors.New("connection reset"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown error, got %d", status)
	}
}
