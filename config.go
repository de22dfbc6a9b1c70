// Package ojformat holds the configuration shared by the ojformat command and
// its subcommands.
package ojformat

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is the configuration read when none is named.
const DefaultConfigFile = "ojformat.yaml"

// Config represents the ojformat configuration
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Search   SearchConfig `yaml:"search"`
	Output   OutputConfig `yaml:"output"`
	Cache    CacheConfig  `yaml:"cache"`
}

// SearchConfig controls the minimum tree search
type SearchConfig struct {
	IterationLimit int           `yaml:"iteration_limit"`
	Timeout        time.Duration `yaml:"timeout"` // 0 means no timeout
	// MultipleTestCases is auto, yes or no
	MultipleTestCases string `yaml:"multiple_test_cases"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `yaml:"format"` // yaml, json or xml
}

// CacheConfig controls the search result cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Multiple test case modes
const (
	MultipleTestCasesAuto = "auto"
	MultipleTestCasesYes  = "yes"
	MultipleTestCasesNo   = "no"
)

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// strict mode rejects unknown keys
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if config.LogLevel != "" && !validLevels[config.LogLevel] {
		return fmt.Errorf("%w: invalid log_level '%s': must be one of debug, info, warn, error", ErrConfigValidation, config.LogLevel)
	}

	if config.Search.IterationLimit < 0 {
		return fmt.Errorf("%w: search.iteration_limit must be non-negative, got %d", ErrConfigValidation, config.Search.IterationLimit)
	}

	if config.Search.Timeout < 0 {
		return fmt.Errorf("%w: search.timeout must be >= 0, got %s", ErrConfigValidation, config.Search.Timeout)
	}

	if mode := config.Search.MultipleTestCases; mode != "" {
		validModes := map[string]bool{
			MultipleTestCasesAuto: true,
			MultipleTestCasesYes:  true,
			MultipleTestCasesNo:   true,
		}
		if !validModes[mode] {
			return fmt.Errorf("%w: search.multiple_test_cases '%s' is invalid: must be one of auto, yes, no", ErrConfigValidation, mode)
		}
	}

	if config.Output.Format != "" {
		validFormats := map[string]bool{
			"yaml": true,
			"json": true,
			"xml":  true,
		}
		if !validFormats[config.Output.Format] {
			return fmt.Errorf("%w: output.format '%s' is invalid: must be one of yaml, json, xml", ErrConfigValidation, config.Output.Format)
		}
	}

	if config.Cache.Enabled && config.Cache.Path == "" {
		return fmt.Errorf("%w: cache.path is required when the cache is enabled", ErrConfigValidation)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Search: SearchConfig{
			IterationLimit:    10000,
			MultipleTestCases: MultipleTestCasesAuto,
		},
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.Search.IterationLimit == 0 {
		config.Search.IterationLimit = defaults.Search.IterationLimit
	}

	if config.Search.MultipleTestCases == "" {
		config.Search.MultipleTestCases = defaults.Search.MultipleTestCases
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in path fields
func expandConfigEnvVars(config *Config) {
	config.Cache.Path = expandEnvVars(config.Cache.Path)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ResolveMultipleTestCases applies search.multiple_test_cases to what the
// statement says.
func (c *Config) ResolveMultipleTestCases(detected bool) bool {
	switch c.Search.MultipleTestCases {
	case MultipleTestCasesYes:
		return true
	case MultipleTestCasesNo:
		return false
	default:
		return detected
	}
}

// CachePath returns the cache database path, or "" when caching is off.
func (c *Config) CachePath() string {
	if !c.Cache.Enabled {
		return ""
	}

	return c.Cache.Path
}
