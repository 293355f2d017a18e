package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderdesk/wanderdesk/internal/api/middleware"
)

func TestRequestID_GeneratesID(t *testing.T) {
	var captured string
	handler := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = middleware.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, captured)
	assert.True(t, strings.HasPrefix(captured, "req_"), "generated IDs carry the req_ prefix")
	assert.Equal(t, captured, rec.Header().Get("X-Request-Id"))
}

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	var captured string
	handler := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req_from-upstream-proxy")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req_from-upstream-proxy", captured)
	assert.Equal(t, "req_from-upstream-proxy", rec.Header().Get("X-Request-Id"))
}

func TestGetRequestID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.GetRequestID(req.Context()))
}
