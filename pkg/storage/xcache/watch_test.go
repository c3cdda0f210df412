package xcache

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile_TriggersOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendor.json")
	cache, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, cache.SaveRecords(context.Background(), testRecords[:1]))

	var fired atomic.Int64
	w, err := WatchFile(path, func(err error) {
		if err == nil {
			fired.Add(1)
		}
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, cache.SaveRecords(context.Background(), testRecords))
	assert.Eventually(t, func() bool { return fired.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchFile_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendor.json")

	var fired atomic.Int64
	w, err := WatchFile(path, func(error) { fired.Add(1) }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), fired.Load())
}

func TestWatchFile_Validation(t *testing.T) {
	_, err := WatchFile("", nil)
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = WatchFile(filepath.Join(t.TempDir(), "missing", "vendor.json"), nil)
	assert.Error(t, err)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := WatchFile(filepath.Join(t.TempDir(), "vendor.json"), nil)
	require.NoError(t, err)
	w.StartAsync()
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	// Stop 之后不能再次启动
	w.StartAsync()
}
