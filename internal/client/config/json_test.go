package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_base_url": "http://json:8000",
		"request_timeout": "4s",
		"request_rate":    1,
		"metrics_addr":    "127.0.0.1:9100",
	})

	cfg := defaults()
	require.NoError(t, parseJson(&cfg, []string{"-config", path}))

	want := defaults()
	want.ServerBaseURL = "http://json:8000"
	want.RequestTimeout = 4 * time.Second
	want.RequestRate = 1
	want.MetricsAddr = "127.0.0.1:9100"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseJson_NoPathNoChanges(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseJson(&cfg, []string{"-a", "x"}))
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseJson_Errors(t *testing.T) {
	cfg := defaults()
	err := parseJson(&cfg, []string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	err = parseJson(&cfg, []string{"-c", bad})
	require.ErrorContains(t, err, "failed to parse config")
}
