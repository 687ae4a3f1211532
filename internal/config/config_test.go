package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Search.Workers < 1 {
		t.Errorf("expected Workers>=1, got %d", cfg.Search.Workers)
	}
	if cfg.Search.DefaultCount != 5 {
		t.Errorf("expected DefaultCount=5, got %d", cfg.Search.DefaultCount)
	}
	if cfg.Search.MaxCount != 500 {
		t.Errorf("expected MaxCount=500, got %d", cfg.Search.MaxCount)
	}
	if cfg.Search.CacheSize != 128 {
		t.Errorf("expected CacheSize=128, got %d", cfg.Search.CacheSize)
	}
	if cfg.Search.CapacitorSeries != "E24" {
		t.Errorf("expected CapacitorSeries=E24, got %q", cfg.Search.CapacitorSeries)
	}
	if cfg.Search.DefaultTolerance != 1 {
		t.Errorf("expected DefaultTolerance=1, got %v", cfg.Search.DefaultTolerance)
	}
}

func TestApplyDefaults_KeepsNegativeCacheSize(t *testing.T) {
	cfg := Config{Search: SearchConfig{CacheSize: -1}}
	cfg.ApplyDefaults()
	if cfg.Search.CacheSize != -1 {
		t.Errorf("expected CacheSize=-1 (disabled), got %d", cfg.Search.CacheSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"negative port", func(c *Config) { c.HTTP.Port = -1 }, "http.port"},
		{"default above max", func(c *Config) { c.Search.DefaultCount = 600 }, "default_count"},
		{"unknown capacitor series", func(c *Config) { c.Search.CapacitorSeries = "E25" }, "capacitor_series"},
		{"unsupported tolerance", func(c *Config) { c.Search.DefaultTolerance = 3 }, "default_tolerance"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	yml := `
http:
  port: ${TEST_ESERIES_PORT:-9090}
search:
  capacitor_series: e12
  default_tolerance: 5
  cache_size: -1
`
	if err := os.WriteFile(filepath.Join("config", "unit.yaml"), []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected Port=9090 from default expansion, got %d", cfg.HTTP.Port)
	}
	if cfg.Search.CapacitorSeries != "e12" {
		t.Errorf("expected CapacitorSeries=e12, got %q", cfg.Search.CapacitorSeries)
	}
	if cfg.Search.DefaultTolerance != 5 {
		t.Errorf("expected DefaultTolerance=5, got %v", cfg.Search.DefaultTolerance)
	}
	if cfg.Search.CacheSize != -1 {
		t.Errorf("expected CacheSize=-1, got %d", cfg.Search.CacheSize)
	}

	t.Setenv("TEST_ESERIES_PORT", "7070")
	cfg, err = Load("unit")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("expected Port=7070 from env, got %d", cfg.HTTP.Port)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.DefaultCount != 5 {
		t.Errorf("expected defaults, got %+v", cfg.Search)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("config", "bad.yaml"), []byte("search: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("bad"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_ESERIES_SET", "value")
	got := string(expandEnvVars([]byte("a=${TEST_ESERIES_SET} b=${TEST_ESERIES_UNSET:-fallback} c=${TEST_ESERIES_UNSET}")))
	if got != "a=value b=fallback c=" {
		t.Errorf("expandEnvVars() = %q", got)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
