package xcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

var testRecords = []xregistry.Record{
	{
		MAC:          "30:23:03",
		CompanyID:    "302303",
		Organization: "Belkin International Inc.",
		Address:      "12045 East Waterfront Drive\nPlaya Vista  CA  90094\nUS",
	},
	{MAC: "00:1B:63", CompanyID: "001B63", Organization: "Apple, Inc."},
}

func TestFile_RecordsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "vendor.json")
	cache, err := NewFile(path)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	_, err = cache.LoadRecords(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, cache.SaveRecords(ctx, testRecords))
	got, err := cache.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRecords, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"company_id":"302303"`)
	assert.Contains(t, string(data), `"organization":"Belkin International Inc."`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are renamed away")
}

func TestFile_SaveEmpty(t *testing.T) {
	cache, err := NewFile(filepath.Join(t.TempDir(), "vendor.json"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.SaveRecords(ctx, nil))
	got, err := cache.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFile_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"mac":"30:23:03"`},
		{"null", `null`},
		{"object", `{"mac":"30:23:03"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vendor.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			cache, err := NewFile(path)
			require.NoError(t, err)

			_, err = cache.LoadRecords(context.Background())
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestFile_Raw(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		cache, err := NewFile(filepath.Join(dir, "a.json"))
		require.NoError(t, err)
		_, err = cache.LoadRaw(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, cache.SaveRaw(ctx, "x"), ErrRawDisabled)
	})

	t.Run("round_trip", func(t *testing.T) {
		cache, err := NewFile(filepath.Join(dir, "b.json"), WithRawPath(filepath.Join(dir, "raw", "vendorRaw.txt")))
		require.NoError(t, err)
		_, err = cache.LoadRaw(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, cache.SaveRaw(ctx, "OUI/MA-L\n30-23-03   (hex)\n"))
		got, err := cache.LoadRaw(ctx)
		require.NoError(t, err)
		assert.Equal(t, "OUI/MA-L\n30-23-03   (hex)\n", got)
	})
}

func TestFile_Validation(t *testing.T) {
	_, err := NewFile("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	cache, err := NewFile(filepath.Join(t.TempDir(), "vendor.json"), WithFilePerm(0o600))
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	assert.ErrorIs(t, cache.Close(), ErrClosed)
	_, err = cache.LoadRecords(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, cache.SaveRecords(context.Background(), testRecords), ErrClosed)
}

func TestFile_CanceledContext(t *testing.T) {
	cache, err := NewFile(filepath.Join(t.TempDir(), "vendor.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, cache.SaveRecords(ctx, testRecords), context.Canceled)
	_, err = cache.LoadRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
