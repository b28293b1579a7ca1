package domain

import (
	"fmt"
	"strings"
)

// Skill ranks.
const (
	RankUntrained = 1
	RankTrained   = 2
	RankExpert    = 3
)

var skillTiers = map[int][]string{
	RankUntrained: {"Intellect", "Speed", "Strength", "Combat"},
	RankTrained: {
		"Athletics", "Firearms", "Rimwise", "Zero-G", "Art", "Astrogation",
		"Botany", "Chemistry", "Engineering", "Geology", "Mathematics", "Medicine",
		"Pathology", "Physics", "Psychology", "Theology", "Linguistics", "Computers",
		"Hacking", "Industrial Equipment", "Military Training", "Piloting", "Tactics",
	},
	RankExpert: {"Command", "Explosives", "Jury-Rigging", "Mysticism", "Hyperspace", "Xenobiology"},
}

// RankName returns the display name of a rank.
func RankName(rank int) string {
	switch rank {
	case RankUntrained:
		return "Untrained"
	case RankTrained:
		return "Trained"
	case RankExpert:
		return "Expert"
	default:
		return "Unknown"
	}
}

// EligibleSkills lists every skill available at rank. Tiers accumulate.
func EligibleSkills(rank int) []string {
	var skills []string
	for r := RankUntrained; r <= rank && r <= RankExpert; r++ {
		skills = append(skills, skillTiers[r]...)
	}
	return skills
}

// eligibleSkill returns the canonical spelling of skill at rank.
func eligibleSkill(rank int, skill string) (string, bool) {
	skill = strings.TrimSpace(skill)
	for _, candidate := range EligibleSkills(rank) {
		if strings.EqualFold(candidate, skill) {
			return candidate, true
		}
	}
	return "", false
}

// SkillwarePlan is the change set of binding a skill to skillware.
type SkillwarePlan struct {
	Rank           int
	Skill          string
	SkillwarePatch ItemPatch
	// NewSkill is set when the actor lacks the skill; AlreadyPresent otherwise.
	NewSkill       *Item
	AlreadyPresent bool
}

// PlanSkillware binds skill to an installed skillware item. Re-planning a
// skill the actor already owns reports AlreadyPresent instead of a new item.
func PlanSkillware(actor Actor, skillware Item, skill string, newID func() (string, error)) (SkillwarePlan, error) {
	actor = actor.Normalize()
	skillware = skillware.Normalize()
	if !IsSkillware(skillware) {
		return SkillwarePlan{}, rejectItem(ErrNotSkillware, skillware, nil)
	}
	rank := SkillwareRank(skillware)
	name, ok := eligibleSkill(rank, skill)
	if !ok {
		return SkillwarePlan{}, rejectItem(ErrSkillNotEligible, skillware, rankMetadata(rank, skill))
	}

	plan := SkillwarePlan{Rank: rank, Skill: name}
	if skillware.Flags.SelectedSkill != name || skillware.Flags.SkillRank != rank {
		plan.SkillwarePatch = ItemPatch{
			SelectedSkill: strPtr(name),
			SkillRank:     intPtr(rank),
			Description:   strPtr(activeSkillDescription(skillware.Description, name, rank)),
		}
	}

	if _, exists := actor.SkillItem(name); exists {
		plan.AlreadyPresent = true
		return plan, nil
	}
	if newID == nil {
		return SkillwarePlan{}, fmt.Errorf("skill id generator is required")
	}
	id, err := newID()
	if err != nil {
		return SkillwarePlan{}, fmt.Errorf("generate skill id: %w", err)
	}
	plan.NewSkill = &Item{
		ID:          id,
		Name:        name,
		Kind:        KindSkill,
		Description: "Granted by " + skillware.Name,
		Trained:     rank >= RankTrained,
		Expert:      rank >= RankExpert,
		Cyber:       Cyber{SlotCost: 1},
		Flags: Flags{
			GrantedBySkillware: skillware.ID,
			SkillwareRank:      rank,
		},
	}
	return plan, nil
}

func activeSkillDescription(description, skill string, rank int) string {
	line := fmt.Sprintf("Active skill: %s (rank %d)", skill, rank)
	if strings.Contains(description, line) {
		return description
	}
	if strings.TrimSpace(description) == "" {
		return line
	}
	return description + "\n" + line
}
