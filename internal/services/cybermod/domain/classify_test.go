package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		want     Type
		wantRule RuleKind
	}{
		{
			name:     "explicit flag wins over typed field",
			item:     Item{Name: "Fangs", Cyber: Cyber{IsCyber: true, CyberType: TypeCyberware}, Flags: Flags{InstallationType: TypeSlickware}},
			want:     TypeSlickware,
			wantRule: RuleExplicitFlag,
		},
		{
			name:     "typed field",
			item:     Item{Name: "Widget", Cyber: Cyber{IsCyber: true, CyberType: TypeSlickware}},
			want:     TypeSlickware,
			wantRule: RuleTypedField,
		},
		{
			name:     "cyber without type defaults to cyberware",
			item:     Item{Name: "Widget", Cyber: Cyber{IsCyber: true}},
			want:     TypeCyberware,
			wantRule: RuleTypedField,
		},
		{
			name:     "legacy boolean",
			item:     Item{Name: "Widget", LegacySlickware: true},
			want:     TypeSlickware,
			wantRule: RuleLegacyBoolean,
		},
		{
			name:     "slickware keyword before cyberware keyword",
			item:     Item{Name: "Hack Interface", Description: "A neural interface for hackers"},
			want:     TypeSlickware,
			wantRule: RuleNameHeuristic,
		},
		{
			name:     "french cyberware keyword",
			item:     Item{Name: "Yeux Améliorés"},
			want:     TypeCyberware,
			wantRule: RuleNameHeuristic,
		},
		{
			name:     "keyword in description",
			item:     Item{Name: "Mk II", Description: "Synth Muscle graft"},
			want:     TypeCyberware,
			wantRule: RuleNameHeuristic,
		},
		{
			name:     "weapon with module flag",
			item:     Item{Name: "Wrist gun", Kind: KindWeapon, HasModuleFlag: true},
			want:     TypeCyberware,
			wantRule: RuleEquipmentFallback,
		},
		{
			name: "plain weapon",
			item: Item{Name: "Revolver", Kind: KindWeapon},
			want: TypeNone,
		},
		{
			name: "plain item",
			item: Item{Name: "Flashlight"},
			want: TypeNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item.Normalize()
			got, rule := ClassifyWithRule(item)
			if got != tt.want {
				t.Fatalf("Classify() = %v, want %v", got, tt.want)
			}
			if tt.want != TypeNone && rule != tt.wantRule {
				t.Fatalf("rule = %v, want %v", rule, tt.wantRule)
			}
			if again := Classify(item); again != got {
				t.Fatalf("second Classify() = %v, want %v", again, got)
			}
		})
	}
}

func TestRulesApplyIndependently(t *testing.T) {
	item := Item{Name: "Black Box", LegacyCyberware: true}.Normalize()
	for _, rule := range Rules {
		got, ok := rule.Apply(item)
		switch rule.Kind {
		case RuleLegacyBoolean, RuleNameHeuristic:
			if !ok || got != TypeCyberware {
				t.Errorf("%v = %v, %v; want cyberware", rule.Kind, got, ok)
			}
		default:
			if ok {
				t.Errorf("%v claimed item as %v", rule.Kind, got)
			}
		}
	}
}

func TestIsInstallable(t *testing.T) {
	if !IsInstallable(cyberItem("a", "Fangs", TypeCyberware, false)) {
		t.Fatal("expected uninstalled cybermod to be installable")
	}
	if IsInstallable(cyberItem("a", "Fangs", TypeCyberware, true)) {
		t.Fatal("expected installed cybermod not to be installable")
	}
	if IsInstallable(Item{Name: "Rope"}.Normalize()) {
		t.Fatal("expected plain item not to be installable")
	}
}

func TestSkillwareRank(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want int
	}{
		{name: "untrained keyword", item: Item{Name: "Skillware (untrained)"}, want: RankUntrained},
		{name: "trained keyword", item: Item{Name: "Skillware", Description: "Trained module"}, want: RankTrained},
		{name: "french expert", item: Item{Name: "Module de compétence rang 3"}, want: RankExpert},
		{name: "skillware phrase is not a rank", item: Item{Name: "Expertise logicielle"}, want: RankUntrained},
		{name: "cost expert", item: Item{Name: "Skillware", Cost: 30000}, want: RankExpert},
		{name: "cost trained", item: Item{Name: "Skillware", Cost: 15000}, want: RankTrained},
		{name: "cost default", item: Item{Name: "Skillware", Cost: 14999}, want: RankUntrained},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkillwareRank(tt.item); got != tt.want {
				t.Fatalf("SkillwareRank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	item := Item{Name: " Fangs ", Cyber: Cyber{CyberType: "bogus"}}.Normalize()
	if item.Name != "Fangs" || item.Kind != KindItem || item.Cyber.SlotCost != 1 || item.Cyber.CyberType != TypeNone {
		t.Fatalf("normalized item = %+v", item)
	}
	actor := Actor{}.Normalize()
	if actor.Stress.Min != DefaultStressMin || actor.Stress.Max != DefaultStressMax {
		t.Fatalf("stress bounds = %+v", actor.Stress)
	}
}

func TestParseType(t *testing.T) {
	if got, err := ParseType(" Slickware "); err != nil || got != TypeSlickware {
		t.Fatalf("ParseType() = %v, %v", got, err)
	}
	if _, err := ParseType("bioware"); err == nil {
		t.Fatal("expected invalid type error")
	}
}
