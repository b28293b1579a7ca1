package domain

import "strings"

// Skill bonuses added to an installation target.
const (
	TrainedSkillBonus = 10
	ExpertSkillBonus  = 15
	// StressPointBonus is the target bonus per chosen stress point.
	StressPointBonus = 10
	// MaxStressChoice caps the stress points a player may take.
	MaxStressChoice = 3
)

// BodySkills are the skills that can assist an installation check, keyed
// by choice value.
var BodySkills = map[string]string{
	"athletics": "Athletics",
	"combat":    "Combat",
	"first_aid": "First Aid",
}

// SkillBonus returns the target bonus the actor's skill grants. Unknown or
// unowned skills grant nothing.
func SkillBonus(actor Actor, skill string) int {
	name, ok := BodySkills[strings.ToLower(strings.TrimSpace(skill))]
	if !ok {
		return 0
	}
	item, ok := actor.SkillItem(name)
	if !ok {
		return 0
	}
	switch {
	case item.Expert:
		return ExpertSkillBonus
	case item.Trained:
		return TrainedSkillBonus
	default:
		return 0
	}
}

// InstallationTarget is the check target for installing a mod of type t:
// body save for cyberware, sanity save for slickware, plus the skill bonus,
// the chosen stress points, and the world difficulty.
func InstallationTarget(actor Actor, t Type, skill string, stressChoice, difficulty int) int {
	base := actor.Saves.Body
	if t == TypeSlickware {
		base = actor.Saves.Sanity
	}
	return base + SkillBonus(actor, skill) + StressPointBonus*stressChoice + difficulty
}
