package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int    `env:"POUND_OF_FLESH_TEST_PORT" envDefault:"123"`
	Name string `env:"POUND_OF_FLESH_TEST_NAME" envDefault:"warden"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("POUND_OF_FLESH_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithLookup(t *testing.T) {
	var cfg envTestConfig
	lookup := func(key string) (string, bool) {
		if key == "POUND_OF_FLESH_TEST_PORT" {
			return "456", true
		}
		return "", false
	}
	if err := ParseEnvWithLookup(&cfg, lookup); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 456 {
		t.Fatalf("port = %d, want 456", cfg.Port)
	}
	if cfg.Name != "warden" {
		t.Fatalf("name = %q, want default", cfg.Name)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "POUND_OF_FLESH_TEST_NAME=from-file\nPOUND_OF_FLESH_TEST_PORT=789\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("POUND_OF_FLESH_TEST_NAME", "from-env")
	t.Setenv("POUND_OF_FLESH_TEST_PORT", "")
	os.Unsetenv("POUND_OF_FLESH_TEST_PORT")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env"), ""); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Fatalf("name = %q, want from-env", cfg.Name)
	}
	if cfg.Port != 789 {
		t.Fatalf("port = %d, want 789", cfg.Port)
	}
}
