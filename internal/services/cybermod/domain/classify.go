package domain

import "strings"

// RuleKind tags one step of the classification precedence.
type RuleKind int

const (
	RuleExplicitFlag RuleKind = iota
	RuleTypedField
	RuleLegacyBoolean
	RuleNameHeuristic
	RuleEquipmentFallback
)

func (k RuleKind) String() string {
	switch k {
	case RuleExplicitFlag:
		return "explicit_flag"
	case RuleTypedField:
		return "typed_field"
	case RuleLegacyBoolean:
		return "legacy_boolean"
	case RuleNameHeuristic:
		return "name_heuristic"
	case RuleEquipmentFallback:
		return "equipment_fallback"
	default:
		return "unknown"
	}
}

// ClassifierRule resolves an item type or defers to the next rule.
type ClassifierRule struct {
	Kind  RuleKind
	Apply func(Item) (Type, bool)
}

// Rules is the classification precedence, first match wins.
var Rules = []ClassifierRule{
	{Kind: RuleExplicitFlag, Apply: explicitFlagRule},
	{Kind: RuleTypedField, Apply: typedFieldRule},
	{Kind: RuleLegacyBoolean, Apply: legacyBooleanRule},
	{Kind: RuleNameHeuristic, Apply: nameHeuristicRule},
	{Kind: RuleEquipmentFallback, Apply: equipmentFallbackRule},
}

func explicitFlagRule(item Item) (Type, bool) {
	if item.Flags.InstallationType.Valid() {
		return item.Flags.InstallationType, true
	}
	return TypeNone, false
}

func typedFieldRule(item Item) (Type, bool) {
	if !item.Cyber.IsCyber {
		return TypeNone, false
	}
	if item.Cyber.CyberType.Valid() {
		return item.Cyber.CyberType, true
	}
	return TypeCyberware, true
}

func legacyBooleanRule(item Item) (Type, bool) {
	switch {
	case item.LegacyCyberware:
		return TypeCyberware, true
	case item.LegacySlickware:
		return TypeSlickware, true
	default:
		return TypeNone, false
	}
}

func nameHeuristicRule(item Item) (Type, bool) {
	// Slickware first: "interface" labels are ambiguous.
	if item.MentionsAny(slickwareKeywords) {
		return TypeSlickware, true
	}
	if item.MentionsAny(cyberwareKeywords) {
		return TypeCyberware, true
	}
	return TypeNone, false
}

func equipmentFallbackRule(item Item) (Type, bool) {
	if item.IsEquipment() && (item.HasCyberFlag || item.HasModuleFlag || item.Cyber.IsCyber) {
		return TypeCyberware, true
	}
	return TypeNone, false
}

// Classify returns the item's cybermod type, or TypeNone.
func Classify(item Item) Type {
	t, _ := ClassifyWithRule(item)
	return t
}

// ClassifyWithRule returns the item's type and the rule that decided it.
// Items no rule claims report RuleEquipmentFallback with TypeNone.
func ClassifyWithRule(item Item) (Type, RuleKind) {
	for _, rule := range Rules {
		if t, ok := rule.Apply(item); ok {
			return t, rule.Kind
		}
	}
	return TypeNone, RuleEquipmentFallback
}

// IsCybermod reports whether the item classifies as a cybermod.
func IsCybermod(item Item) bool {
	return Classify(item) != TypeNone
}

// IsInstalled reports the installed marker.
func IsInstalled(item Item) bool {
	return item.Cyber.Installed
}

// IsInstallable reports whether the item is a cybermod not yet installed.
func IsInstallable(item Item) bool {
	return IsCybermod(item) && !IsInstalled(item)
}

// IsSkillware reports whether the item is skillware.
func IsSkillware(item Item) bool {
	return item.MentionsAny(skillwareKeywords)
}

// IsSlicksocket reports whether the item is a slicksocket, installed or not.
func IsSlicksocket(item Item) bool {
	return item.MentionsAny(slicksocketKeywords)
}

// SkillwareRank derives the rank (1 to 3) from rank keywords, falling back
// to the item cost.
func SkillwareRank(item Item) int {
	text := strings.ToLower(item.Name + " " + item.Description)
	for _, keyword := range skillwareKeywords {
		text = strings.ReplaceAll(text, keyword, "")
	}
	switch {
	case containsAny(text, untrainedRankKeywords):
		return RankUntrained
	case containsAny(text, expertRankKeywords):
		return RankExpert
	case containsAny(text, trainedRankKeywords):
		return RankTrained
	}
	switch {
	case item.Cost >= 30000:
		return RankExpert
	case item.Cost >= 15000:
		return RankTrained
	default:
		return RankUntrained
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
