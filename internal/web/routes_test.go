package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_AccessLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := NewRouter(RouterServices{
		Sessions:  resolvedManager(t),
		Auth:      &AuthHandlers{},
		Resources: &ResourceHandlers{},
		Logger:    logger,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get("X-Request-Id")
	require.NotEmpty(t, id)

	// The generated ID must reach the access log, not just the response
	// header.
	assert.Contains(t, buf.String(), id)
}
