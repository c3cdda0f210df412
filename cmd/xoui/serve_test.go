package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/oui/xlookup"
	"github.com/omeyang/xoui/pkg/oui/xsource"
)

func newTestService(t *testing.T) *xlookup.Service {
	t.Helper()
	svc, err := xlookup.New(xlookup.WithFetcher(xsource.FileFetcher{Path: sampleRegistry}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func getJSON(t *testing.T, h http.Handler, target string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestLookupHandler(t *testing.T) {
	h := newLookupHandler(newTestService(t))

	code, body := getJSON(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["records"])
	assert.NotContains(t, body, "loaded_at")

	code, body = getJSON(t, h, "/lookup/30:23:03:aa:bb:cc")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "vendor", body["kind"])
	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Belkin International Inc.", result["organization"])

	code, body = getJSON(t, h, "/lookup?mac=02-00-00-00-00-01")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "private", body["kind"])

	code, body = getJSON(t, h, "/lookup/nonsense")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "no_match", body["kind"])

	code, body = getJSON(t, h, "/lookup")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "missing mac parameter", body["error"])

	code, body = getJSON(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 5, body["records"])
	assert.Contains(t, body, "loaded_at")
}

func TestLookupHandler_MethodNotAllowed(t *testing.T) {
	h := newLookupHandler(newTestService(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lookup/30:23:03:aa:bb:cc", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWithRequestLog(t *testing.T) {
	h := withRequestLog(newLookupHandler(newTestService(t)), xlog.Default())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	id := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated id is a UUID: %q", id)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	args, _ := offlineArgs(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	argv := append([]string{"xoui"}, args...)
	argv = append(argv, "serve", "--listen", "127.0.0.1:0", "--refresh-interval", "20ms")
	code := run(ctx, argv, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
}

func TestServe_ListenError(t *testing.T) {
	args, _ := offlineArgs(t)
	res := runCLI(t, "", append(args, "serve", "--listen", "not-an-address", "--refresh-interval", "0")...)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "错误:")
}
