package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/core/check"
	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
)

// Grade is the graded result of a percentile check. Higher is better.
type Grade int

const (
	GradeFumble Grade = iota
	GradeFailure
	GradeSuccess
	GradeCritical
)

func (g Grade) String() string {
	switch g {
	case GradeFumble:
		return "fumble"
	case GradeFailure:
		return "failure"
	case GradeSuccess:
		return "success"
	case GradeCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the grade is a success of any kind.
func (g Grade) Succeeded() bool {
	return g == GradeSuccess || g == GradeCritical
}

// CheckResult is one percentile roll against a target.
type CheckResult struct {
	Rolled   int
	Target   int
	IsDouble bool
	Is100    bool
}

// CheckFromRoll reads a d100 face against target.
func CheckFromRoll(rolled, target int) CheckResult {
	p := dice.ReadPercentile(rolled)
	return CheckResult{Rolled: rolled, Target: target, IsDouble: p.IsDouble, Is100: p.Is100}
}

// GradeCheck grades a roll-under check. Equality fails; 00 is always a
// critical success; a failing double is a fumble.
func GradeCheck(c CheckResult) Grade {
	r := check.RollUnder(c.Rolled, c.Target, c.IsDouble, c.Is100)
	switch {
	case r.Success && r.Critical:
		return GradeCritical
	case r.Success:
		return GradeSuccess
	case r.Critical:
		return GradeFumble
	default:
		return GradeFailure
	}
}

// KeepCheck picks the die to keep from a percentile roll. Advantage keeps
// the best graded die, disadvantage the worst; ties keep the lower face
// under advantage and the higher face under disadvantage.
func KeepCheck(mode dice.Mode, target int, faces []int) (CheckResult, error) {
	if len(faces) == 0 {
		return CheckResult{}, dice.ErrMissingDice
	}
	kept := CheckFromRoll(faces[0], target)
	if mode == dice.ModeNormal {
		return kept, nil
	}
	for _, face := range faces[1:] {
		candidate := CheckFromRoll(face, target)
		kg, cg := GradeCheck(kept), GradeCheck(candidate)
		switch mode {
		case dice.ModeAdvantage:
			if cg > kg || (cg == kg && candidate.Rolled < kept.Rolled) {
				kept = candidate
			}
		case dice.ModeDisadvantage:
			if cg < kg || (cg == kg && candidate.Rolled > kept.Rolled) {
				kept = candidate
			}
		}
	}
	return kept, nil
}

// TriggerKind names a deferred table roll.
type TriggerKind string

const (
	TriggerMalfunction TriggerKind = "malfunction"
	TriggerPanic       TriggerKind = "panic"
)

const (
	// MalfunctionTable is the world table drawn on a fumbled installation.
	MalfunctionTable = "Table de Dysfonctionnements Cybermod"
	// PanicTable is the world table drawn on a fumble or a panic check.
	PanicTable = "Table de Panique Cybermod"
)

// Trigger is a follow-up table draw scheduled after commit.
type Trigger struct {
	Kind    TriggerKind
	Table   string
	Formula string
	ItemID  string
}

func malfunctionTrigger(itemID string) Trigger {
	return Trigger{Kind: TriggerMalfunction, Table: MalfunctionTable, Formula: "1d100", ItemID: itemID}
}

func panicTrigger(itemID string) Trigger {
	return Trigger{Kind: TriggerPanic, Table: PanicTable, Formula: "1d20", ItemID: itemID}
}

// OutcomeRequest carries one graded installation roll.
type OutcomeRequest struct {
	Actor       Actor
	Item        Item
	Type        Type
	StressBonus int
	Check       CheckResult
	Now         time.Time
}

// Outcome is the consequence plan of an installation roll. Nothing is
// applied: the caller commits ActorPatch and ItemPatch, then runs Triggers.
type Outcome struct {
	Grade               Grade
	Critical            bool
	Fumble              bool
	InstallationSuccess bool
	Malfunctioning      bool
	SlotsUsed           int
	StressReduction     int
	StressGain          int
	Damage              int
	SanityLoss          int
	OverclockLevel      int
	IsOverclocked       bool
	ActorPatch          ActorPatch
	ItemPatch           ItemPatch
	Triggers            []Trigger
}

// ResolveOutcome grades the check and plans its consequences. Sub-rolls
// (1d5 stress relief, Nd10 damage) go through roller.
func ResolveOutcome(ctx context.Context, req OutcomeRequest, roller dice.Roller) (Outcome, error) {
	if roller == nil {
		return Outcome{}, apperrors.New(apperrors.CodeInternal, "dice roller is required")
	}
	actor := req.Actor.Normalize()
	item := req.Item.Normalize()
	t := req.Type
	if t == TypeNone {
		t = Classify(item)
	}
	if !t.Valid() {
		return Outcome{}, rejectItem(ErrNotACybermod, item, nil)
	}

	grade := GradeCheck(req.Check)
	out := Outcome{
		Grade:               grade,
		Critical:            grade == GradeCritical,
		Fumble:              grade == GradeFumble,
		InstallationSuccess: grade != GradeFumble,
		SlotsUsed:           InstalledMods(actor).Count(t) + 1,
	}

	stress := actor.Stress.Value
	health := actor.Health.Value
	sanity := actor.Saves.Sanity

	switch grade {
	case GradeCritical:
		relief, err := rollTotal(ctx, roller, "1d5")
		if err != nil {
			return Outcome{}, err
		}
		stress -= relief
	case GradeFailure:
		out.Malfunctioning = true
		if t == TypeCyberware {
			damage, err := rollTotal(ctx, roller, fmt.Sprintf("%dd10", (out.SlotsUsed+1)/2))
			if err != nil {
				return Outcome{}, err
			}
			health -= damage
		} else {
			stress += out.SlotsUsed
		}
	case GradeFumble:
		if t == TypeCyberware {
			damage, err := rollTotal(ctx, roller, fmt.Sprintf("%dd10", out.SlotsUsed))
			if err != nil {
				return Outcome{}, err
			}
			health -= damage
		} else {
			sanity -= out.SlotsUsed
			stress += out.SlotsUsed
		}
		out.Triggers = []Trigger{malfunctionTrigger(item.ID), panicTrigger(item.ID)}
	}

	// The floor bounds the grade effect before the bonus applies.
	stress = actor.Stress.Clamp(stress)
	if req.StressBonus > 0 {
		stress = actor.Stress.Clamp(stress + req.StressBonus/10)
	}
	health = max(health, 0)
	sanity = max(sanity, 0)

	if stress < actor.Stress.Value {
		out.StressReduction = actor.Stress.Value - stress
	} else {
		out.StressGain = stress - actor.Stress.Value
	}
	out.Damage = actor.Health.Value - health
	out.SanityLoss = actor.Saves.Sanity - sanity

	if stress != actor.Stress.Value {
		out.ActorPatch.Stress = intPtr(stress)
	}
	if health != actor.Health.Value {
		out.ActorPatch.Health = intPtr(health)
	}
	if sanity != actor.Saves.Sanity {
		out.ActorPatch.Sanity = intPtr(sanity)
	}

	if out.InstallationSuccess {
		out.ItemPatch = installPatch(item, t, req.Now, out.Malfunctioning)
	}

	projected := out.ActorPatch.Apply(withItem(actor, item)).WithPatch(item.ID, out.ItemPatch)
	mods := InstalledMods(projected)
	out.OverclockLevel = mods.OverclockLevel
	out.IsOverclocked = mods.IsOverclocked
	return out, nil
}

func installPatch(item Item, t Type, now time.Time, malfunctioning bool) ItemPatch {
	patch := ItemPatch{
		Installed:        boolPtr(true),
		InstallationType: typePtr(t),
	}
	if !now.IsZero() {
		patch.InstallDate = timePtr(now.UTC())
	}
	if !item.Cyber.CyberType.Valid() {
		patch.CyberType = typePtr(t)
	}
	if malfunctioning {
		patch.Malfunctioning = boolPtr(true)
	}
	return patch
}

func withItem(actor Actor, item Item) Actor {
	if _, ok := actor.Item(item.ID); ok {
		return actor
	}
	items := make([]Item, 0, len(actor.Items)+1)
	items = append(items, actor.Items...)
	actor.Items = append(items, item)
	return actor
}

func rollTotal(ctx context.Context, roller dice.Roller, formula string) (int, error) {
	result, err := roller.Roll(ctx, formula)
	if err != nil {
		return 0, apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "roll "+formula, map[string]string{"Formula": formula}, err)
	}
	return result.Total, nil
}
