package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/whoosh/internal/testutil"
)

func TestLoggingKeepsClientRequestID(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	var seen string
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusUnauthorized)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), `"request_id":"req-1"`)
	assert.Contains(t, logs.String(), `"status":401`)
	assert.Contains(t, logs.String(), `"bearer":true`)
	assert.Contains(t, logs.String(), `"level":"INFO"`)
	assert.NotContains(t, logs.String(), "abc")
}

func TestLoggingAssignsRequestID(t *testing.T) {
	logger, _ := testutil.CaptureLogger()

	var seen string
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	var recovered any
	panicHandler := func(w http.ResponseWriter, _ *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusInternalServerError)
	}
	h := Logging(logger)(Recovery(logger, panicHandler)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/match/join/", nil)
	req.Header.Set(RequestIDHeader, "req-2")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "boom", recovered)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), `"msg":"panic recovered"`)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), `"request_id":"req-2"`)
}
