package domain

import (
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/platform/errors/i18n"
)

// OverclockLevel is the actor's current overflow level.
func OverclockLevel(actor Actor) int {
	return InstalledMods(actor).OverclockLevel
}

// OverclockEffectText returns the narrative effect for level in the base
// locale. Levels above the table reuse its last entry; level 0 and below
// return "".
func OverclockEffectText(level int) string {
	return LocalizedOverclockEffect(level, i18n.BaseLocale)
}

// LocalizedOverclockEffect is OverclockEffectText for a locale.
func LocalizedOverclockEffect(level int, locale string) string {
	text, _ := i18n.GetCatalog(locale).OverclockEffect(level)
	return text
}

// WillCauseOverclock reports whether installing one more mod of type t
// raises the actor's overclock level.
func WillCauseOverclock(actor Actor, t Type) bool {
	mods := InstalledMods(actor)
	cyberware, slickware := len(mods.Cyberware), len(mods.Slickware)
	switch t {
	case TypeCyberware:
		cyberware++
	case TypeSlickware:
		slickware++
	default:
		return false
	}
	return overclockLevel(cyberware, slickware, mods.Slots) > mods.OverclockLevel
}

// OverclockPlan is the change set of overclocking one item.
type OverclockPlan struct {
	ItemPatch ItemPatch
	// Changed is false when the item was already overclocked.
	Changed bool
}

// PlanOverclockItem pushes an installed, overclockable item past its rating.
// The actor sheet is left alone.
func PlanOverclockItem(item Item) (OverclockPlan, error) {
	item = item.Normalize()
	if !item.Cyber.CanOverclock {
		return OverclockPlan{}, rejectItem(ErrNotOverclockable, item, nil)
	}
	if !IsInstalled(item) {
		return OverclockPlan{}, rejectItem(ErrNotInstalled, item, nil)
	}
	if item.Cyber.Overclocked {
		return OverclockPlan{}, nil
	}
	return OverclockPlan{
		ItemPatch: ItemPatch{Overclocked: boolPtr(true)},
		Changed:   true,
	}, nil
}

// PlanRemoval uninstalls an item and records when. Overclocked and
// malfunctioning markers are cleared with it.
func PlanRemoval(item Item, now time.Time) (ItemPatch, error) {
	item = item.Normalize()
	if !IsInstalled(item) {
		return ItemPatch{}, rejectItem(ErrNotInstalled, item, nil)
	}
	patch := ItemPatch{Installed: boolPtr(false)}
	if item.Cyber.Overclocked {
		patch.Overclocked = boolPtr(false)
	}
	if item.Cyber.Malfunctioning {
		patch.Malfunctioning = boolPtr(false)
	}
	if !now.IsZero() {
		patch.RemovedDate = timePtr(now.UTC())
	}
	return patch, nil
}
