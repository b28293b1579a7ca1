// Package seed loads a world file into the cybermod database.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/pound-of-flesh/internal/platform/config"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/bootstrap"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/fixtures"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"POUND_OF_FLESH_DB_PATH" envDefault:"data/cybermod.db"`
	// File is a world YAML path; empty seeds the bundled sample world.
	File string
	// Check validates the world without writing it.
	Check bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg, lookup); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.File, "file", "", "world YAML file (default: bundled sample world)")
	fs.BoolVar(&cfg.Check, "check", false, "validate the world file and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	world, err := loadWorld(cfg.File)
	if err != nil {
		return err
	}
	if cfg.Check {
		fmt.Fprintf(out, "world ok: %d actors, %d tables\n", len(world.Actors), len(world.Tables))
		return nil
	}

	store, err := bootstrap.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := fixtures.Import(ctx, store, world)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %s: %d actors, %d items, %d tables\n", cfg.DBPath, summary.Actors, summary.Items, summary.Tables)
	return nil
}

func loadWorld(path string) (fixtures.World, error) {
	if path == "" {
		return fixtures.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return fixtures.World{}, fmt.Errorf("open world file: %w", err)
	}
	defer f.Close()
	return fixtures.Load(f)
}
