package ojformat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 10000, config.Search.IterationLimit)
	assert.Equal(t, time.Duration(0), config.Search.Timeout)
	assert.Equal(t, MultipleTestCasesAuto, config.Search.MultipleTestCases)
	assert.Equal(t, "yaml", config.Output.Format)
	assert.Equal(t, "", config.CachePath())
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("OJFORMAT_CACHE_DIR", "/tmp/ojformat")

	path := writeConfig(t, `log_level: debug
search:
  iteration_limit: 500
  timeout: 30s
  multiple_test_cases: "yes"
output:
  format: json
cache:
  enabled: true
  path: ${OJFORMAT_CACHE_DIR}/cache.db
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 500, config.Search.IterationLimit)
	assert.Equal(t, 30*time.Second, config.Search.Timeout)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, "/tmp/ojformat/cache.db", config.CachePath())
	assert.True(t, config.ResolveMultipleTestCases(false))
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "output:\n  format: xml\n"))
	assert.NoError(t, err)
	assert.Equal(t, "xml", config.Output.Format)
	assert.Equal(t, 10000, config.Search.IterationLimit)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "dialect: postgres\n"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{"defaults", *getDefaultConfig(), true},
		{"bad log level", Config{LogLevel: "trace"}, false},
		{"negative limit", Config{Search: SearchConfig{IterationLimit: -1}}, false},
		{"negative timeout", Config{Search: SearchConfig{Timeout: -time.Second}}, false},
		{"bad mode", Config{Search: SearchConfig{MultipleTestCases: "maybe"}}, false},
		{"bad format", Config{Output: OutputConfig{Format: "csv"}}, false},
		{"cache without path", Config{Cache: CacheConfig{Enabled: true}}, false},
		{"cache with path", Config{Cache: CacheConfig{Enabled: true, Path: "cache.db"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrConfigValidation))
			}
		})
	}
}

func TestResolveMultipleTestCases(t *testing.T) {
	config := getDefaultConfig()
	assert.True(t, config.ResolveMultipleTestCases(true))
	assert.False(t, config.ResolveMultipleTestCases(false))

	config.Search.MultipleTestCases = MultipleTestCasesNo
	assert.False(t, config.ResolveMultipleTestCases(true))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("OJFORMAT_A", "x")
	assert.Equal(t, "x/x/", expandEnvVars("${OJFORMAT_A}/$OJFORMAT_A/$OJFORMAT_UNSET"))
}
