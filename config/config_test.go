package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/automl/logger"
)

func TestConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := Config{}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if len(cfg.Definitions.Dirs) == 0 {
			t.Error("expected default definition dirs")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := Config{Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{"valid development", Config{Environment: "development", Logging: loggingOK()}, false, ""},
		{"valid production", Config{Environment: "production", Logging: loggingOK()}, false, ""},
		{"invalid environment", Config{Environment: "qa", Logging: loggingOK()}, true, "config.environment must be one of"},
		{"invalid logging level", Config{Environment: "production", Logging: loggingBadLevel()}, true, "config.logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_FromExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
environment: production
logging:
  level: debug
  format: json
definitions:
  dirs:
    - /opt/pipelines
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	var cfg Config
	if err := Load(&cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected production, got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
	if len(cfg.Definitions.Dirs) != 1 || cfg.Definitions.Dirs[0] != "/opt/pipelines" {
		t.Errorf("unexpected definition dirs: %v", cfg.Definitions.Dirs)
	}
}

func TestLoad_MissingFilesIsFine(t *testing.T) {
	var cfg Config
	if err := Load(&cfg, WithFileSystem(&fakeFS{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// fakeFS is a FileSystem where nothing exists.
type fakeFS struct{}

func (f *fakeFS) Exists(string) bool        { return false }
func (f *fakeFS) LoadEnv(path string) error { return nil }

func loggingOK() logger.Config {
	return logger.Config{Level: "info", Format: "json"}
}

func loggingBadLevel() logger.Config {
	return logger.Config{Level: "verbose", Format: "json"}
}
