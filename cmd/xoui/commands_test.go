package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

const sampleRegistry = "testdata/oui_sample.txt"

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"xoui"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// offlineArgs 使用本地注册表与临时目录下的文件缓存。
func offlineArgs(t *testing.T) (args []string, recordsPath string) {
	t.Helper()
	dir := t.TempDir()
	recordsPath = filepath.Join(dir, "oui.json")
	cfg := "registry:\n  file: " + sampleRegistry + "\n" +
		"cache:\n  backend: file\n  records_path: " + recordsPath + "\n  raw_path: " + filepath.Join(dir, "oui.txt") + "\n"
	cfgPath := filepath.Join(dir, "xoui.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return []string{"--config", cfgPath}, recordsPath
}

func TestLookup_Text(t *testing.T) {
	args, recordsPath := offlineArgs(t)
	res := runCLI(t, "", append(args, "lookup", "30:23:03:aa:bb:cc", "2-0-0-0-0-1", "nonsense")...)
	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "30:23:03:aa:bb:cc\t30:23:03\tBelkin International Inc.", lines[0])
	assert.Equal(t, "2-0-0-0-0-1\t02:00:00\tPrivate", lines[1])
	assert.Equal(t, "nonsense\t-\tno match", lines[2])

	_, err := os.Stat(recordsPath)
	assert.NoError(t, err, "first lookup persists the record cache")
}

func TestLookup_JSONFromStdin(t *testing.T) {
	args, _ := offlineArgs(t)
	res := runCLI(t, "# inventory\n0-1b-63-84-45-e6\n\n08:00:27:00:00:01\n", append(args, "lookup", "--json")...)
	require.Equal(t, 0, res.code, res.stderr)

	var out []struct {
		Input  string          `json:"input"`
		Kind   string          `json:"kind"`
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "vendor", out[0].Kind)

	var rec xregistry.Record
	require.NoError(t, json.Unmarshal(out[0].Result, &rec))
	assert.Equal(t, "00:1B:63", rec.MAC)
	assert.Equal(t, "001B63", rec.CompanyID)
	assert.Equal(t, "Apple, Inc.", rec.Organization)
	assert.Equal(t, "PCS Systemtechnik GmbH", func() string {
		var r xregistry.Record
		require.NoError(t, json.Unmarshal(out[1].Result, &r))
		return r.Organization
	}())
}

func TestLookup_FailOnMiss(t *testing.T) {
	args, _ := offlineArgs(t)
	res := runCLI(t, "", append(args, "lookup", "--fail-on-miss", "AC:BB:CC:00:00:00")...)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "no match")
	assert.NotContains(t, res.stderr, "错误", "exit code only, no error message")
}

func TestLookup_NoInput(t *testing.T) {
	args, _ := offlineArgs(t)
	res := runCLI(t, "", append(args, "lookup")...)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "no MAC address")
}

func TestUpdate(t *testing.T) {
	args, recordsPath := offlineArgs(t)
	res := runCLI(t, "", append(args, "update")...)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "updated: 5 records\n", res.stdout)

	data, err := os.ReadFile(recordsPath)
	require.NoError(t, err)
	var recs []xregistry.Record
	require.NoError(t, json.Unmarshal(data, &recs))
	assert.Len(t, recs, 5)
}

func TestFetchRawThenUpdateFromRaw(t *testing.T) {
	args, _ := offlineArgs(t)
	res := runCLI(t, "", append(args, "fetch-raw")...)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "raw registry saved")

	// 原始文本已落盘，不再需要注册表来源
	args = append(args, "--file", filepath.Join(t.TempDir(), "missing.txt"))
	res = runCLI(t, "", append(args, "update", "--from-raw")...)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "updated: 5 records\n", res.stdout)
}

func TestUpdate_FetchFailure(t *testing.T) {
	res := runCLI(t, "", "--backend", "none", "--file", filepath.Join(t.TempDir(), "missing.txt"), "update")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "错误:")
}

func TestUpdate_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	res := runCLI(t, "",
		"--backend", "redis",
		"--file", sampleRegistry,
		"--config", writeConfig(t, "cache:\n  redis_addr: "+mr.Addr()+"\n  redis_key: \"test:\"\n"),
		"update",
	)
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, mr.Exists("test:records"))
}

func TestParse(t *testing.T) {
	res := runCLI(t, "", "parse", sampleRegistry)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "entries: 6, records: 5, skipped: 1\n", res.stdout)
	assert.Contains(t, res.stderr, "BROKEN ENTRY")

	res = runCLI(t, "", "parse", "--json", sampleRegistry)
	require.Equal(t, 0, res.code, res.stderr)
	var recs []xregistry.Record
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &recs))
	require.Len(t, recs, 5)
	assert.Equal(t, "30:23:03", recs[0].MAC)

	res = runCLI(t, "", "parse", "--strict", sampleRegistry)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "malformed")
}

func TestParse_Usage(t *testing.T) {
	res := runCLI(t, "", "parse")
	assert.Equal(t, 2, res.code)

	res = runCLI(t, "", "parse", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, res.code)
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown backend", []string{"--backend", "memcached", "update"}, "unknown cache backend"},
		{"bad log level", []string{"--log-level", "loud", "--backend", "none", "update"}, "unknown level"},
		{"missing config", []string{"--config", "/nonexistent/xoui.yaml", "update"}, "failed to load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)
			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xoui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
