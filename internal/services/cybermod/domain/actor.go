package domain

import "strings"

const (
	// DefaultStressMin is the stress floor when the sheet sets none.
	DefaultStressMin = 2
	// DefaultStressMax is the stress ceiling when the sheet sets none.
	DefaultStressMax = 20
)

// Stats are the four character stats.
type Stats struct {
	Strength  int
	Speed     int
	Intellect int
	Combat    int
}

// Saves are the three character saves.
type Saves struct {
	Sanity int
	Fear   int
	Body   int
}

// Health tracks current and maximum health.
type Health struct {
	Value int
	Max   int
}

// Stress tracks the stress value and its bounds.
type Stress struct {
	Value int
	Min   int
	Max   int
}

// Clamp bounds value to [Min, Max].
func (s Stress) Clamp(value int) int {
	if value < s.Min {
		return s.Min
	}
	if value > s.Max {
		return s.Max
	}
	return value
}

// Actor is the normalized view of a host character document.
type Actor struct {
	ID     string
	Name   string
	Stats  Stats
	Saves  Saves
	Health Health
	Stress Stress
	Items  []Item
}

// Normalize fills stress bounds and normalizes every owned item.
func (a Actor) Normalize() Actor {
	a.ID = strings.TrimSpace(a.ID)
	a.Name = strings.TrimSpace(a.Name)
	if a.Stress.Min == 0 && a.Stress.Max == 0 {
		a.Stress.Min = DefaultStressMin
	}
	if a.Stress.Max <= 0 {
		a.Stress.Max = DefaultStressMax
	}
	if a.Stress.Min < 0 {
		a.Stress.Min = 0
	}
	if a.Stress.Min > a.Stress.Max {
		a.Stress.Min = a.Stress.Max
	}
	if len(a.Items) > 0 {
		items := make([]Item, len(a.Items))
		for idx, item := range a.Items {
			items[idx] = item.Normalize()
		}
		a.Items = items
	}
	return a
}

// Item returns the owned item with id.
func (a Actor) Item(id string) (Item, bool) {
	for _, item := range a.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// SkillItem returns the owned skill item named name, ignoring case.
func (a Actor) SkillItem(name string) (Item, bool) {
	for _, item := range a.Items {
		if item.Kind == KindSkill && strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			return item, true
		}
	}
	return Item{}, false
}
