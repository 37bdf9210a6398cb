package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.GetFollowRedirects())
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.Equal(t, "  ", cfg.IndentString())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())
	assert.True(t, cfg.GetColorJSON())
	assert.False(t, cfg.LogJSON())
	assert.NoError(t, cfg.Validate())
}

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFindAndLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hitcurl.yaml", `
followRedirects: false
colorJSON: false
logFormat: json
proxy: http://proxy.local:3128
indent: 4
headers:
  User-Agent: hitcurl-test
  Accept: application/json
`)

	cfg, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.False(t, cfg.GetFollowRedirects())
	assert.False(t, cfg.GetColorJSON())
	assert.True(t, cfg.LogJSON())
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
	assert.Equal(t, "    ", cfg.IndentString())
	assert.Equal(t, "hitcurl-test", cfg.Headers["User-Agent"])
	assert.Equal(t, "application/json", cfg.Headers["Accept"])
}

func TestFindAndLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hitcurl.json", `{"maxRedirects": 3, "noColor": true}`)

	cfg, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxRedirects)
	assert.True(t, cfg.GetNoColor())
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestFindAndLoadConfig_SearchOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hitcurlrc", `maxRedirects: 1`)
	writeFile(t, dir, ".hitcurl.yml", `maxRedirects: 2`)

	cfg, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxRedirects)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `logLevel: debug`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "indent: [unterminated")

	_, err := LoadConfig(path)

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"negative indent", "indent: -1", "Indent"},
		{"bad log format", "logFormat: xml", "LogFormat"},
		{"too many redirects", "maxRedirects: 500", "MaxRedirects"},
		{"bad proxy", "proxy: not a url", "Proxy"},
		{"bad indent", "indent: 20", "Indent"},
		{"bad log level", "logLevel: loud", "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "cfg.yaml", tt.content)

			_, err := LoadConfig(path)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"Accept": "text/plain", "X-Base": "1"}

	merged := base.Merge(&Config{
		Verbose:   BoolPtr(true),
		NoColor:   BoolPtr(true),
		ColorJSON: BoolPtr(false),
		LogLevel:  "debug",
		Headers:   map[string]string{"Accept": "application/json"},
	})

	assert.False(t, merged.GetColorJSON())
	assert.True(t, merged.GetVerbose())
	assert.True(t, merged.GetNoColor())
	assert.True(t, merged.GetFollowRedirects())
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, map[string]string{"Accept": "application/json", "X-Base": "1"}, merged.Headers)

	// base is left untouched
	assert.True(t, base.GetColorJSON())
	assert.Equal(t, "text/plain", base.Headers["Accept"])
}

func TestMerge_Nil(t *testing.T) {
	base := DefaultConfig()
	assert.Same(t, base, base.Merge(nil))
}
