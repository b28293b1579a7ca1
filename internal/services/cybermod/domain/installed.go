package domain

// Installed is the aggregated view of an actor's installed cybermods.
type Installed struct {
	Cyberware      []Item
	Slickware      []Item
	Slots          Slots
	OverclockLevel int
	IsOverclocked  bool
}

// Count returns the number of installed mods of type t.
func (i Installed) Count(t Type) int {
	switch t {
	case TypeCyberware:
		return len(i.Cyberware)
	case TypeSlickware:
		return len(i.Slickware)
	default:
		return 0
	}
}

// InstalledMods scans the actor's items for installed cybermods.
func InstalledMods(actor Actor) Installed {
	return InstalledModsWithSlots(actor, CalculateSlots(actor))
}

// InstalledModsWithSlots aggregates using precomputed slots.
func InstalledModsWithSlots(actor Actor, slots Slots) Installed {
	installed := Installed{Cyberware: []Item{}, Slickware: []Item{}, Slots: slots}
	for _, item := range actor.Items {
		if !IsInstalled(item) {
			continue
		}
		switch Classify(item) {
		case TypeCyberware:
			installed.Cyberware = append(installed.Cyberware, item)
		case TypeSlickware:
			installed.Slickware = append(installed.Slickware, item)
		}
	}
	installed.OverclockLevel = overclockLevel(len(installed.Cyberware), len(installed.Slickware), slots)
	installed.IsOverclocked = installed.OverclockLevel > 0
	return installed
}

// overclockLevel sums the overflow of both types and floors the total at 0.
// A spare slot of one type offsets overflow of the other.
func overclockLevel(cyberware, slickware int, slots Slots) int {
	level := (cyberware - slots.Cyberware) + (slickware - slots.Slickware)
	if level < 0 {
		return 0
	}
	return level
}
