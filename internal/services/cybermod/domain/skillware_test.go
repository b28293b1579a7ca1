package domain

import (
	"testing"

	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
)

func fixedID(id string) func() (string, error) {
	return func() (string, error) { return id, nil }
}

func TestEligibleSkillsAreCumulative(t *testing.T) {
	one, two, three := EligibleSkills(RankUntrained), EligibleSkills(RankTrained), EligibleSkills(RankExpert)
	if len(one) != 4 || len(two) != 27 || len(three) != 33 {
		t.Fatalf("tier sizes = %d/%d/%d", len(one), len(two), len(three))
	}
	if len(EligibleSkills(0)) != 0 {
		t.Fatal("expected no skills at rank 0")
	}
	if len(EligibleSkills(9)) != len(three) {
		t.Fatal("expected ranks above expert to cap at expert")
	}
	if RankName(RankTrained) != "Trained" || RankName(7) != "Unknown" {
		t.Fatal("unexpected rank names")
	}
}

func TestPlanSkillwareScenarioE(t *testing.T) {
	skillware := Item{ID: "sw", Name: "Skillware rang 2", Cyber: Cyber{IsCyber: true, Installed: true}}.Normalize()
	actor := newActor(20, 20, skillware)

	plan, err := PlanSkillware(actor, skillware, "athletics", fixedID("skill-1"))
	if err != nil {
		t.Fatalf("PlanSkillware() error = %v", err)
	}
	if plan.Rank != RankTrained || plan.Skill != "Athletics" || plan.AlreadyPresent {
		t.Fatalf("plan = %+v", plan)
	}
	if plan.NewSkill == nil || plan.NewSkill.Kind != KindSkill || !plan.NewSkill.Trained || plan.NewSkill.Expert {
		t.Fatalf("new skill = %+v", plan.NewSkill)
	}
	if plan.NewSkill.Flags.GrantedBySkillware != "sw" || plan.NewSkill.Flags.SkillwareRank != RankTrained {
		t.Fatalf("new skill flags = %+v", plan.NewSkill.Flags)
	}

	// Apply the plan, then resolve again with the same skill.
	updated := plan.SkillwarePatch.Apply(skillware)
	actor.Items = []Item{updated, *plan.NewSkill}
	again, err := PlanSkillware(actor, updated, "Athletics", fixedID("skill-2"))
	if err != nil {
		t.Fatalf("second PlanSkillware() error = %v", err)
	}
	if !again.AlreadyPresent || again.NewSkill != nil {
		t.Fatalf("second plan = %+v, want already present", again)
	}
	if !again.SkillwarePatch.IsZero() {
		t.Fatalf("second skillware patch = %+v, want no change", again.SkillwarePatch)
	}
}

func TestPlanSkillwareRejects(t *testing.T) {
	actor := newActor(20, 20)
	if _, err := PlanSkillware(actor, Item{ID: "x", Name: "Fangs"}, "Combat", fixedID("id")); apperrors.CodeOf(err) != apperrors.CodeNotSkillware {
		t.Fatalf("error = %v, want not skillware", err)
	}
	untrained := Item{ID: "sw", Name: "Skillware"}
	_, err := PlanSkillware(actor, untrained, "Hacking", fixedID("id"))
	if apperrors.CodeOf(err) != apperrors.CodeSkillNotEligible {
		t.Fatalf("error = %v, want skill not eligible", err)
	}
	if msg := apperrors.UserMessage(err, "en-US"); msg != "Hacking is not available at rank 1." {
		t.Fatalf("user message = %q", msg)
	}
}

func TestInstallationTarget(t *testing.T) {
	athletics := Item{ID: "sk", Name: "Athletics", Kind: KindSkill, Trained: true}
	firstAid := Item{ID: "fa", Name: "First Aid", Kind: KindSkill, Trained: true, Expert: true}
	actor := newActor(20, 20, athletics, firstAid)

	tests := []struct {
		name       string
		t          Type
		skill      string
		stress     int
		difficulty int
		want       int
	}{
		{name: "body only", t: TypeCyberware, want: 40},
		{name: "sanity for slickware", t: TypeSlickware, want: 30},
		{name: "trained skill", t: TypeCyberware, skill: "athletics", want: 50},
		{name: "expert skill", t: TypeCyberware, skill: "first_aid", want: 55},
		{name: "unowned skill", t: TypeCyberware, skill: "combat", want: 40},
		{name: "stress and difficulty", t: TypeCyberware, stress: 2, difficulty: -10, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InstallationTarget(actor, tt.t, tt.skill, tt.stress, tt.difficulty); got != tt.want {
				t.Fatalf("InstallationTarget() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveSanitySave(t *testing.T) {
	actor := newActor(20, 20)
	actor.Saves.Sanity = 40

	if out := ResolveSanitySave(actor, 12); out.Grade != GradeSuccess || !out.ActorPatch.IsZero() {
		t.Fatalf("success outcome = %+v", out)
	}
	out := ResolveSanitySave(actor, 52)
	if out.Grade != GradeFailure || *out.ActorPatch.Stress != 4 || len(out.Triggers) != 0 {
		t.Fatalf("failure outcome = %+v", out)
	}
	out = ResolveSanitySave(actor, 88)
	if out.Grade != GradeFumble || len(out.Triggers) != 1 || out.Triggers[0].Kind != TriggerPanic {
		t.Fatalf("fumble outcome = %+v", out)
	}
}
