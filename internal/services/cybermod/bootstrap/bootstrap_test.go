package bootstrap

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/platform/config"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/app"
)

func TestConfigDefaultsAndFlags(t *testing.T) {
	var cfg Config
	lookup := func(key string) (string, bool) {
		if key == "POUND_OF_FLESH_INSTALLATION_DIFFICULTY" {
			return "-5", true
		}
		return "", false
	}
	if err := config.ParseEnvWithLookup(&cfg, lookup); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if !cfg.Enabled || cfg.SlotCacheTTL != 5*time.Second || cfg.InstallationDifficulty != -5 {
		t.Fatalf("cfg = %+v", cfg)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, &cfg)
	if err := fs.Parse([]string{"-difficulty", "10", "-enabled=false", "-locale", "fr-FR"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.InstallationDifficulty != 10 || cfg.Enabled || cfg.Locale != "fr-FR" {
		t.Fatalf("cfg after flags = %+v", cfg)
	}
}

func TestOpenAndClose(t *testing.T) {
	cfg := Config{
		DBPath:   filepath.Join(t.TempDir(), "nested", "cybermod.db"),
		Enabled:  true,
		LogLevel: "error",
		DiceSeed: 42,
	}
	stack, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !stack.Service.Settings().Enabled {
		t.Fatal("service disabled")
	}
	if err := stack.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenRejectsBadLogLevel(t *testing.T) {
	_, err := Open(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "x.db"), LogLevel: "loud"}, nil)
	if err == nil {
		t.Fatal("expected log level error")
	}
}

func TestWriterNarrator(t *testing.T) {
	var buf bytes.Buffer
	err := WriterNarrator{W: &buf}.Post(context.Background(), app.Narrative{
		Header:  "Ripley: Improved Eyes installation, success",
		Details: []app.Detail{{Label: "Roll", Value: "23"}},
		Flavor:  "The installation holds.",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"== Ripley", "  Roll: 23", "The installation holds."} {
		if !strings.Contains(got, want) {
			t.Fatalf("output %q lacks %q", got, want)
		}
	}
}
