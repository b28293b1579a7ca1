package domain

// SlotDivisor converts a stat into slots.
const SlotDivisor = 10

// Slots is the actor's cybermod capacity.
type Slots struct {
	Cyberware      int
	Slickware      int
	HasSlicksocket bool
}

// Capacity returns the slot count for t.
func (s Slots) Capacity(t Type) int {
	switch t {
	case TypeCyberware:
		return s.Cyberware
	case TypeSlickware:
		return s.Slickware
	default:
		return 0
	}
}

// CalculateSlots derives capacity from strength and intellect. Slickware
// capacity is zero until a slicksocket is installed.
func CalculateSlots(actor Actor) Slots {
	slots := Slots{
		Cyberware:      statSlots(actor.Stats.Strength),
		HasSlicksocket: HasSlicksocket(actor),
	}
	if slots.HasSlicksocket {
		slots.Slickware = statSlots(actor.Stats.Intellect)
	}
	return slots
}

// HasSlicksocket scans the actor's items for an installed slicksocket.
func HasSlicksocket(actor Actor) bool {
	for _, item := range actor.Items {
		if IsInstalled(item) && IsSlicksocket(item) {
			return true
		}
	}
	return false
}

func statSlots(stat int) int {
	if stat <= 0 {
		return 0
	}
	return stat / SlotDivisor
}
