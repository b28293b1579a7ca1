package seed

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/bootstrap"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/cybermod.db" || cfg.File != "" || cfg.Check {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lookup := func(key string) (string, bool) {
		if key == "POUND_OF_FLESH_DB_PATH" {
			return "env.db", true
		}
		return "", false
	}
	cfg, err := ParseConfig(fs, []string{"-db", "flag.db", "-file", "world.yaml"}, lookup)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "flag.db" || cfg.File != "world.yaml" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestRunSeedsBundledWorld(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "2 actors, 8 items, 2 tables") {
		t.Fatalf("unexpected output %q", got)
	}

	store, err := bootstrap.OpenStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()
	actors, err := store.ListActors(context.Background())
	if err != nil {
		t.Fatalf("list actors: %v", err)
	}
	if len(actors) != 2 {
		t.Fatalf("expected 2 actors, got %d", len(actors))
	}
}

func TestRunCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	worldPath := filepath.Join(dir, "world.yaml")
	world := "actors:\n  - id: vasquez\n    name: Vasquez\n"
	if err := os.WriteFile(worldPath, []byte(world), 0o600); err != nil {
		t.Fatalf("write world: %v", err)
	}
	dbPath := filepath.Join(dir, "never.db")
	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath, File: worldPath, Check: true}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "world ok: 1 actors") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("expected no database file, stat err = %v", err)
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	err := Run(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "x.db"), File: "/nonexistent/world.yaml"}, nil)
	if err == nil || !strings.Contains(err.Error(), "open world file") {
		t.Fatalf("expected open error, got %v", err)
	}
}
