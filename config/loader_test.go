package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}

// chdir switches to dir for the rest of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })
}

func clearEnv(t *testing.T) {
	t.Setenv("PT_CONFIG", "")
	t.Setenv("PT_DEBUG", "")
	t.Setenv("PT_API_TOKEN", "")
}

// TestConfig_LoadFromFile tests loading an explicit config file
func TestConfig_LoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8080
discovery:
  timeoutMS: 2500
store:
  dsn: ":memory:"
log:
  debug: true
`)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.DiscoveryTimeout() != 2500*time.Millisecond {
		t.Errorf("expected 2.5s timeout, got %v", cfg.DiscoveryTimeout())
	}
	if cfg.Store.DSN != ":memory:" || !cfg.Log.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}

	t.Logf("✓ Loaded config with port: %d", cfg.Server.Port)
}

// TestConfig_Defaults tests that missing settings fall back to defaults
func TestConfig_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("Empty config should load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
	if cfg.DiscoveryTimeout() != DefaultDiscoveryTimeout {
		t.Errorf("expected default timeout, got %v", cfg.DiscoveryTimeout())
	}
	if cfg.Store.DSN != DefaultStoreDSN {
		t.Errorf("expected default DSN, got %q", cfg.Store.DSN)
	}
	if cfg.Registry.Path != "" {
		t.Errorf("expected embedded registry, got %q", cfg.Registry.Path)
	}
}

// TestConfig_NoFileUsesDefaults tests the search path when nothing exists
func TestConfig_NoFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("Missing default config should not fail: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

// TestConfig_SearchPath tests that config.yml in the working directory is found
func TestConfig_SearchPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server:\n  port: 9090\n"), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	chdir(t, dir)

	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

// TestConfig_MissingExplicitFile tests error handling for a missing explicit config
func TestConfig_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Error("Loading non-existent explicit config should return error")
	}

	t.Logf("✓ Missing config returns error: %v", err)
}

// TestConfig_InvalidYAML tests error handling for invalid YAML
func TestConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "invalid: yaml: content: [[[")

	if _, err := LoadAppConfig(path); err == nil {
		t.Error("Loading invalid YAML should return error")
	}
}

// TestConfig_Validation tests struct tag validation
func TestConfig_Validation(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"negative port", "server:\n  port: -1\n"},
		{"port too large", "server:\n  port: 70000\n"},
		{"negative timeout", "discovery:\n  timeoutMS: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadAppConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestConfig_EnvOverrides tests PT_* environment overrides
func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "log:\n  debug: false\n")
	t.Setenv("PT_CONFIG", path)
	t.Setenv("PT_DEBUG", "true")
	t.Setenv("PT_API_TOKEN", "env-token")

	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Log.Debug {
		t.Error("PT_DEBUG should enable debug logging")
	}
	if cfg.APIToken != "env-token" {
		t.Errorf("expected token from env, got %q", cfg.APIToken)
	}

	t.Setenv("PT_DEBUG", "maybe")
	if _, err := LoadAppConfig(""); err == nil {
		t.Error("invalid PT_DEBUG should return error")
	}
}
