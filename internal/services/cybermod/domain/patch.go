package domain

import "time"

// ActorPatch is one batched partial update of an actor. Nil fields are
// left untouched.
type ActorPatch struct {
	Stress *int
	Health *int
	Sanity *int
}

// IsZero reports whether the patch changes nothing.
func (p ActorPatch) IsZero() bool {
	return p.Stress == nil && p.Health == nil && p.Sanity == nil
}

// Apply returns actor with the patch applied.
func (p ActorPatch) Apply(actor Actor) Actor {
	if p.Stress != nil {
		actor.Stress.Value = *p.Stress
	}
	if p.Health != nil {
		actor.Health.Value = *p.Health
	}
	if p.Sanity != nil {
		actor.Saves.Sanity = *p.Sanity
	}
	return actor
}

// Inverse returns the patch restoring actor's current values for every
// field p sets.
func (p ActorPatch) Inverse(actor Actor) ActorPatch {
	var inverse ActorPatch
	if p.Stress != nil {
		inverse.Stress = intPtr(actor.Stress.Value)
	}
	if p.Health != nil {
		inverse.Health = intPtr(actor.Health.Value)
	}
	if p.Sanity != nil {
		inverse.Sanity = intPtr(actor.Saves.Sanity)
	}
	return inverse
}

// ItemPatch is one batched partial update of an item.
type ItemPatch struct {
	Installed        *bool
	CyberType        *Type
	Malfunctioning   *bool
	Overclocked      *bool
	InstallationType *Type
	InstallDate      *time.Time
	RemovedDate      *time.Time
	SelectedSkill    *string
	SkillRank        *int
	Description      *string
}

// IsZero reports whether the patch changes nothing.
func (p ItemPatch) IsZero() bool {
	return p == ItemPatch{}
}

// Apply returns item with the patch applied.
func (p ItemPatch) Apply(item Item) Item {
	if p.Installed != nil {
		item.Cyber.Installed = *p.Installed
	}
	if p.CyberType != nil {
		item.Cyber.CyberType = *p.CyberType
	}
	if p.Malfunctioning != nil {
		item.Cyber.Malfunctioning = *p.Malfunctioning
	}
	if p.Overclocked != nil {
		item.Cyber.Overclocked = *p.Overclocked
	}
	if p.InstallationType != nil {
		item.Flags.InstallationType = *p.InstallationType
	}
	if p.InstallDate != nil {
		item.Flags.InstallDate = *p.InstallDate
	}
	if p.RemovedDate != nil {
		item.Flags.RemovedDate = *p.RemovedDate
	}
	if p.SelectedSkill != nil {
		item.Flags.SelectedSkill = *p.SelectedSkill
	}
	if p.SkillRank != nil {
		item.Flags.SkillRank = *p.SkillRank
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	return item
}

// WithPatch returns a copy of the actor with the item patch applied to the
// owned item with id.
func (a Actor) WithPatch(itemID string, patch ItemPatch) Actor {
	items := make([]Item, len(a.Items))
	copy(items, a.Items)
	for idx := range items {
		if items[idx].ID == itemID {
			items[idx] = patch.Apply(items[idx])
		}
	}
	a.Items = items
	return a
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func typePtr(v Type) *Type    { return &v }
func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }
