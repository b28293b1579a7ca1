package mcp

import (
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if !cfg.Stack.Enabled || cfg.Stack.Locale != "en-US" {
		t.Fatalf("expected stack defaults, got %+v", cfg.Stack)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	lookup := func(key string) (string, bool) {
		switch key {
		case "POUND_OF_FLESH_MCP_HTTP_ADDR":
			return "env-http", true
		case "POUND_OF_FLESH_LOCALE":
			return "fr-FR", true
		default:
			return "", false
		}
	}
	args := []string{"-http-addr", "flag-http", "-transport", "http", "-db", "flag.db"}
	cfg, err := ParseConfig(fs, args, lookup)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.Stack.Locale != "fr-FR" || cfg.Stack.DBPath != "flag.db" {
		t.Fatalf("expected env locale and flag db, got %+v", cfg.Stack)
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-transport", "carrier-pigeon", "-db", filepath.Join(t.TempDir(), "c.db"), "-log-level", "error"}, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	err = Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Fatalf("expected unsupported transport, got %v", err)
	}
}
