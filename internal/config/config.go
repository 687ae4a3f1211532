package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/eseries/internal/domain/series"
)

// Config holds the eseries configuration shared by the CLI and the HTTP service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchConfig holds combination search settings.
type SearchConfig struct {
	Workers          int     `yaml:"workers"`           // 0 = GOMAXPROCS
	DefaultCount     int     `yaml:"default_count"`     // results when none are requested
	MaxCount         int     `yaml:"max_count"`         // HTTP clamp
	CacheSize        int     `yaml:"cache_size"`        // result lists kept; negative disables
	CapacitorSeries  string  `yaml:"capacitor_series"`  // E12, E24, E96, E192
	DefaultTolerance float64 `yaml:"default_tolerance"` // percent
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file is not an error: defaults apply so the CLI runs without one.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	var cfg Config
	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.Workers <= 0 {
		c.Search.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Search.DefaultCount <= 0 {
		c.Search.DefaultCount = 5
	}
	if c.Search.MaxCount <= 0 {
		c.Search.MaxCount = 500
	}
	if c.Search.CacheSize == 0 {
		c.Search.CacheSize = 128
	}
	if c.Search.CapacitorSeries == "" {
		c.Search.CapacitorSeries = "E24"
	}
	if c.Search.DefaultTolerance == 0 {
		c.Search.DefaultTolerance = 1
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.DefaultCount > c.Search.MaxCount {
		return fmt.Errorf("search.default_count (%d) exceeds search.max_count (%d)",
			c.Search.DefaultCount, c.Search.MaxCount)
	}
	if _, err := series.Lookup(c.Search.CapacitorSeries); err != nil {
		return fmt.Errorf("search.capacitor_series: %w", err)
	}
	if !series.ValidTolerance(c.Search.DefaultTolerance) {
		return fmt.Errorf("search.default_tolerance must be one of %v, got %g",
			series.ToleranceClasses(), c.Search.DefaultTolerance)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
