package xsource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/resilience/xbreaker"
	"github.com/omeyang/xoui/pkg/resilience/xretry"
)

const sample = "30-23-03   (hex)\t\tBelkin International Inc.\n302303     (base 16)\t\tBelkin International Inc.\n"

func quietLogger(t *testing.T) xlog.Logger {
	t.Helper()
	logger, _, err := xlog.New().SetOutput(io.Discard).Build()
	require.NoError(t, err)
	return logger
}

func newTestFetcher(t *testing.T, opts ...HTTPOption) *HTTPFetcher {
	t.Helper()
	base := []HTTPOption{WithBackoff(xretry.NewNoBackoff()), WithLogger(quietLogger(t))}
	return NewHTTPFetcher(append(base, opts...)...)
}

// statusSequence 依次返回 codes 中的状态码，耗尽后返回 200 + sample。
func statusSequence(codes ...int) (http.HandlerFunc, *atomic.Int64) {
	var n atomic.Int64
	return func(w http.ResponseWriter, _ *http.Request) {
		i := int(n.Add(1)) - 1
		if i < len(codes) {
			w.WriteHeader(codes[i])
			return
		}
		_, _ = io.WriteString(w, sample)
	}, &n
}

func TestHTTPFetcher_OK(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, sample)
	}))
	defer srv.Close()

	body, err := newTestFetcher(t).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, sample, body)
	ua, _ := gotUA.Load().(string)
	assert.True(t, strings.HasPrefix(ua, "xoui/"))
}

func TestHTTPFetcher_RetriesServerErrors(t *testing.T) {
	handler, calls := statusSequence(http.StatusBadGateway, http.StatusServiceUnavailable)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	body, err := newTestFetcher(t).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, sample, body)
	assert.Equal(t, int64(3), calls.Load())
}

func TestHTTPFetcher_GivesUpAfterAttempts(t *testing.T) {
	handler, calls := statusSequence(500, 500, 500, 500, 500)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	_, err := newTestFetcher(t, WithAttempts(2)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, int64(2), calls.Load())
}

func TestHTTPFetcher_ClientErrorIsPermanent(t *testing.T) {
	handler, calls := statusSequence(http.StatusNotFound)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	_, err := newTestFetcher(t).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.True(t, xretry.IsPermanent(err))
	assert.Equal(t, int64(1), calls.Load())
}

func TestHTTPFetcher_BreakerOpens(t *testing.T) {
	handler, calls := statusSequence(500, 500, 500, 500)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	breaker := xbreaker.NewBreaker("registry", xbreaker.WithThreshold(1), xbreaker.WithTimeout(time.Hour))
	f := newTestFetcher(t, WithAttempts(2), WithBreaker(breaker))

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int64(2), calls.Load(), "one breaker request covers the whole retry sequence")
	assert.Equal(t, xbreaker.StateOpen, breaker.State())

	_, err = f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, xbreaker.ErrOpenState)
	assert.Equal(t, int64(2), calls.Load(), "no request while open")
}

func TestHTTPFetcher_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 1024))
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, WithMaxBytes(100)).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestFetcher(t, WithTimeout(50*time.Millisecond), WithAttempts(1)).
		Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	handler, _ := statusSequence()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestFetcher(t).Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oui.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	body, err := FileFetcher{Path: path}.Fetch(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, sample, body)

	body, err = FileFetcher{}.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, sample, body)

	_, err = FileFetcher{}.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestStaticFetcher(t *testing.T) {
	f := NewStaticFetcher(sample)
	body, err := f.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, sample, body)

	boom := errors.New("boom")
	f.Err = boom
	_, err = f.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), f.Calls())
}
