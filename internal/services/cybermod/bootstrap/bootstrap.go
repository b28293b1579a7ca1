// Package bootstrap wires storage, dice, logging, and the cybermod service
// from command configuration.
package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	"github.com/louisbranch/pound-of-flesh/internal/platform/logging"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/app"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage/sqlite"
	"go.uber.org/zap"
)

// Config holds the settings shared by every cybermod command.
type Config struct {
	DBPath                 string        `env:"POUND_OF_FLESH_DB_PATH"                 envDefault:"data/cybermod.db"`
	Enabled                bool          `env:"POUND_OF_FLESH_CYBERMODS_ENABLED"       envDefault:"true"`
	Debug                  bool          `env:"POUND_OF_FLESH_DEBUG"                   envDefault:"false"`
	LogLevel               string        `env:"POUND_OF_FLESH_LOG_LEVEL"               envDefault:"info"`
	InstallationDifficulty int           `env:"POUND_OF_FLESH_INSTALLATION_DIFFICULTY" envDefault:"0"`
	SlotCacheTTL           time.Duration `env:"POUND_OF_FLESH_SLOT_CACHE_TTL"          envDefault:"5s"`
	Locale                 string        `env:"POUND_OF_FLESH_LOCALE"                  envDefault:"en-US"`
	DiceSeed               int64         `env:"POUND_OF_FLESH_DICE_SEED"               envDefault:"0"`
}

// RegisterFlags binds cfg fields to flags, keeping env values as defaults.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.Enabled, "enabled", cfg.Enabled, "allow cybermod mutations")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose workflow logging")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.IntVar(&cfg.InstallationDifficulty, "difficulty", cfg.InstallationDifficulty, "installation difficulty modifier (-20 to 20)")
	fs.DurationVar(&cfg.SlotCacheTTL, "slot-cache-ttl", cfg.SlotCacheTTL, "slot cache entry lifetime")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for player-facing messages")
	fs.Int64Var(&cfg.DiceSeed, "dice-seed", cfg.DiceSeed, "dice seed for reproducible rolls (0 = random)")
}

// Stack is an opened cybermod runtime.
type Stack struct {
	Config  Config
	Logger  *zap.Logger
	Store   *sqlite.Store
	Dice    dice.Roller
	Service *app.Service
}

// Open builds the stack. Narrative output goes to narrator; a nil narrator
// discards it.
func Open(ctx context.Context, cfg Config, narrator app.Narrator) (*Stack, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return nil, err
	}
	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	roller, err := newRoller(cfg.DiceSeed)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	svc, err := app.NewService(app.Runtime{
		Store:    store,
		Dice:     roller,
		Tables:   app.StoreTables{Store: store, Dice: roller},
		Narrator: narrator,
		Settings: app.Settings{
			Enabled:                cfg.Enabled,
			Debug:                  cfg.Debug,
			InstallationDifficulty: cfg.InstallationDifficulty,
			SlotCacheTTL:           cfg.SlotCacheTTL,
			Locale:                 cfg.Locale,
		},
		Logger: logger,
	}, nil)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	applied, err := store.Migrations(ctx)
	if err != nil {
		logger.Warn("list migrations failed", zap.Error(err))
	}
	logger.Debug("cybermod stack opened",
		zap.String("db", cfg.DBPath),
		zap.Strings("migrations", applied),
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("difficulty", svc.Settings().InstallationDifficulty),
	)
	return &Stack{Config: cfg, Logger: logger, Store: store, Dice: roller, Service: svc}, nil
}

// OpenStore opens the SQLite store, creating its directory.
func OpenStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cybermod store: %w", err)
	}
	return store, nil
}

// Close drains follow-ups and closes storage.
func (s *Stack) Close() error {
	if s == nil {
		return nil
	}
	s.Service.Close()
	err := s.Store.Close()
	_ = s.Logger.Sync()
	return err
}

func newRoller(seed int64) (dice.Roller, error) {
	if seed != 0 {
		return dice.NewRoller(seed), nil
	}
	return dice.NewRandomRoller()
}

// WriterNarrator prints narratives as plain text.
type WriterNarrator struct {
	W io.Writer
}

// Post writes one narrative block.
func (n WriterNarrator) Post(_ context.Context, narrative app.Narrative) error {
	if n.W == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", narrative.Header)
	for _, detail := range narrative.Details {
		fmt.Fprintf(&b, "  %s: %s\n", detail.Label, detail.Value)
	}
	if narrative.Flavor != "" {
		fmt.Fprintf(&b, "  %s\n", narrative.Flavor)
	}
	_, err := io.WriteString(n.W, b.String())
	return err
}
