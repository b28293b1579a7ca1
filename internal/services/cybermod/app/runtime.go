package app

import (
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	"github.com/louisbranch/pound-of-flesh/internal/platform/errors/i18n"
	"github.com/louisbranch/pound-of-flesh/internal/platform/id"
	"github.com/louisbranch/pound-of-flesh/internal/platform/logging"
	platformotel "github.com/louisbranch/pound-of-flesh/internal/platform/otel"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// MinInstallationDifficulty is the lowest world difficulty modifier.
	MinInstallationDifficulty = -20
	// MaxInstallationDifficulty is the highest world difficulty modifier.
	MaxInstallationDifficulty = 20

	tracerName = "cybermod"
)

// Settings are the world-level switches.
type Settings struct {
	Enabled                bool
	Debug                  bool
	InstallationDifficulty int
	SlotCacheTTL           time.Duration
	Locale                 string
}

// Runtime is the explicit context threaded through every workflow.
type Runtime struct {
	Store    storage.DocumentStore
	Dice     dice.Roller
	Tables   TableRoller
	Narrator Narrator
	Settings Settings
	Logger   *zap.Logger
	Tracer   trace.Tracer
	Slots    *domain.SlotCache
	Clock    func() time.Time
	NewID    func() (string, error)
}

func (rt Runtime) withDefaults() Runtime {
	rt.Logger = logging.OrNop(rt.Logger)
	if rt.Tracer == nil {
		rt.Tracer = platformotel.Tracer(tracerName)
	}
	if rt.Clock == nil {
		rt.Clock = time.Now
	}
	if rt.NewID == nil {
		rt.NewID = id.NewID
	}
	if rt.Settings.Locale == "" {
		rt.Settings.Locale = i18n.BaseLocale
	}
	rt.Settings.InstallationDifficulty = clampDifficulty(rt.Settings.InstallationDifficulty)
	if rt.Slots == nil {
		rt.Slots = domain.NewSlotCache(domain.DefaultSlotCacheSize, rt.Settings.SlotCacheTTL)
	}
	return rt
}

func clampDifficulty(value int) int {
	return min(max(value, MinInstallationDifficulty), MaxInstallationDifficulty)
}
