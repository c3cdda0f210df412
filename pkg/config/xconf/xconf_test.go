package xconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registryConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Retries int           `koanf:"retries"`
}

type testConfig struct {
	Registry registryConfig `koanf:"registry"`
	Strict   bool           `koanf:"strict"`
}

const testYAML = `
registry:
  url: https://example.com/oui.txt
  timeout: 30s
strict: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_YAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "xoui.yaml", testYAML)
	c, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())
	assert.Equal(t, FormatYAML, c.Format())

	cfg := testConfig{Registry: registryConfig{Retries: 3}}
	require.NoError(t, c.Unmarshal("", &cfg))
	assert.Equal(t, "https://example.com/oui.txt", cfg.Registry.URL)
	assert.Equal(t, 30*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 3, cfg.Registry.Retries, "missing key keeps prefilled default")
	assert.True(t, cfg.Strict)

	var reg registryConfig
	require.NoError(t, c.Unmarshal("registry", &reg))
	assert.Equal(t, cfg.Registry.URL, reg.URL)
	assert.Equal(t, "30s", c.Client().String("registry.timeout"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = New("xoui.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = New(writeFile(t, "bad.json", "{not json"))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestNewFromBytes(t *testing.T) {
	c, err := NewFromBytes([]byte(`{"registry":{"retries":5}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Client().Int("registry.retries"))
	assert.Empty(t, c.Path())
	assert.ErrorIs(t, c.Reload(), ErrReloadFromBytes)

	empty, err := NewFromBytes(nil, FormatYAML)
	require.NoError(t, err)
	var cfg testConfig
	require.NoError(t, empty.Unmarshal("", &cfg))
	assert.Zero(t, cfg)

	_, err = NewFromBytes([]byte("a: 1"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnmarshal_TypeMismatch(t *testing.T) {
	c, err := NewFromBytes([]byte("registry:\n  retries: many\n"), FormatYAML)
	require.NoError(t, err)
	var cfg testConfig
	assert.ErrorIs(t, c.Unmarshal("", &cfg), ErrUnmarshalFailed)
}

func TestOptions(t *testing.T) {
	c, err := NewFromBytes([]byte("registry:\n  url: u\n"), FormatYAML, WithDelim("/"), WithTag("json"), WithTag(""))
	require.NoError(t, err)
	assert.Equal(t, "u", c.Client().String("registry/url"))

	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, c.Unmarshal("registry", &out))
	assert.Equal(t, "u", out.URL)
}

func TestReload(t *testing.T) {
	path := writeFile(t, "xoui.yml", "strict: false\n")
	c, err := New(path)
	require.NoError(t, err)
	old := c.Client()

	require.NoError(t, os.WriteFile(path, []byte("strict: true\n"), 0o600))
	require.NoError(t, c.Reload())
	assert.True(t, c.Client().Bool("strict"))
	assert.False(t, old.Bool("strict"), "old snapshot unchanged")

	require.NoError(t, os.WriteFile(path, []byte("strict: [\n"), 0o600))
	assert.ErrorIs(t, c.Reload(), ErrParseFailed)
	assert.True(t, c.Client().Bool("strict"), "failed reload keeps previous config")

	require.NoError(t, os.Remove(path))
	assert.ErrorIs(t, c.Reload(), ErrLoadFailed)
}

func TestReload_Concurrent(t *testing.T) {
	path := writeFile(t, "xoui.yaml", testYAML)
	c, err := New(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Reload())
		}()
		go func() {
			defer wg.Done()
			var cfg testConfig
			assert.NoError(t, c.Unmarshal("", &cfg))
		}()
	}
	wg.Wait()
}
