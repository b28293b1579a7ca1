package domain

import (
	"strings"
	"time"
)

// Cyber is the mutable cybermod sub-record of an item.
type Cyber struct {
	IsCyber        bool
	CyberType      Type
	Installed      bool
	Requirements   string
	SlotCost       int
	CanOverclock   bool
	Overclocked    bool
	Malfunctioning bool
}

// Flags are the add-on values stored alongside an item.
type Flags struct {
	InstallationType   Type
	InstallDate        time.Time
	RemovedDate        time.Time
	SelectedSkill      string
	SkillRank          int
	GrantedBySkillware string
	SkillwareRank      int
}

// Item is the normalized view of a host item document.
type Item struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Cost        int

	// LegacyCyberware and LegacySlickware mirror the older boolean type fields.
	LegacyCyberware bool
	LegacySlickware bool
	// HasCyberFlag and HasModuleFlag record a cyber or module marker on equipment.
	HasCyberFlag  bool
	HasModuleFlag bool

	// Trained and Expert apply to skill items.
	Trained bool
	Expert  bool

	Cyber Cyber
	Flags Flags
}

// Normalize fills defaults so rules never guard against absent fields.
func (i Item) Normalize() Item {
	i.ID = strings.TrimSpace(i.ID)
	i.Name = strings.TrimSpace(i.Name)
	i.Kind = Kind(strings.ToLower(strings.TrimSpace(string(i.Kind))))
	if i.Kind == "" {
		i.Kind = KindItem
	}
	if i.Cost < 0 {
		i.Cost = 0
	}
	if i.Cyber.SlotCost < 1 {
		i.Cyber.SlotCost = 1
	}
	if !i.Cyber.CyberType.Valid() {
		i.Cyber.CyberType = TypeNone
	}
	if !i.Flags.InstallationType.Valid() {
		i.Flags.InstallationType = TypeNone
	}
	i.Cyber.Requirements = strings.TrimSpace(i.Cyber.Requirements)
	return i
}

// IsEquipment reports whether the item is a weapon or armor.
func (i Item) IsEquipment() bool {
	return i.Kind == KindWeapon || i.Kind == KindArmor
}

// Mentions reports whether the name or description contains keyword,
// ignoring case.
func (i Item) Mentions(keyword string) bool {
	keyword = strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(i.Name), keyword) ||
		strings.Contains(strings.ToLower(i.Description), keyword)
}

// MentionsAny reports whether the item mentions any keyword.
func (i Item) MentionsAny(keywords []string) bool {
	for _, keyword := range keywords {
		if i.Mentions(keyword) {
			return true
		}
	}
	return false
}
