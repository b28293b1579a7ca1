package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
)

const (
	imageSuccess     = "icons/cybermod/install-success.webp"
	imageFailure     = "icons/cybermod/install-failure.webp"
	imageMalfunction = "icons/cybermod/malfunction.webp"
	imageOverclock   = "icons/cybermod/overclock.webp"
)

func installationNarrative(actor domain.Actor, item domain.Item, res Resolution) Narrative {
	o := res.Outcome
	n := Narrative{
		Header: fmt.Sprintf("%s: %s installation, %s", actor.Name, item.Name, gradeLabel(o.Grade)),
		Image:  imageSuccess,
		Details: []Detail{
			{Label: "Type", Value: res.Type.String()},
			{Label: "Roll", Value: rollLabel(res)},
			{Label: "Target", Value: strconv.Itoa(res.Target)},
		},
	}
	if !o.InstallationSuccess {
		n.Image = imageFailure
	}
	if res.StressChoice > 0 {
		n.Details = append(n.Details, Detail{Label: "Stress taken", Value: strconv.Itoa(res.StressChoice)})
	}
	if res.Skill != "" {
		n.Details = append(n.Details, Detail{Label: "Skill", Value: domain.BodySkills[res.Skill]})
	}
	if o.StressReduction > 0 {
		n.Details = append(n.Details, Detail{Label: "Stress relieved", Value: strconv.Itoa(o.StressReduction)})
	}
	if o.StressGain > 0 {
		n.Details = append(n.Details, Detail{Label: "Stress gained", Value: strconv.Itoa(o.StressGain)})
	}
	if o.Damage > 0 {
		n.Details = append(n.Details, Detail{Label: "Damage", Value: strconv.Itoa(o.Damage)})
	}
	if o.SanityLoss > 0 {
		n.Details = append(n.Details, Detail{Label: "Sanity lost", Value: strconv.Itoa(o.SanityLoss)})
	}
	switch {
	case o.Critical:
		n.Flavor = "The implant takes to the flesh like it was always there."
	case o.Fumble:
		n.Flavor = "The body rejects the implant violently."
	case o.Malfunctioning:
		n.Flavor = "It is in, but something is wrong."
	case o.InstallationSuccess:
		n.Flavor = "The installation holds."
	}
	return n
}

func gradeLabel(g domain.Grade) string {
	switch g {
	case domain.GradeCritical:
		return "critical success"
	case domain.GradeSuccess:
		return "success"
	case domain.GradeFailure:
		return "failure"
	default:
		return "critical failure"
	}
}

func rollLabel(res Resolution) string {
	if res.Mode == dice.ModeNormal || len(res.Faces) < 2 {
		return strconv.Itoa(res.Check.Rolled)
	}
	faces := make([]string, 0, len(res.Faces))
	for _, face := range res.Faces {
		faces = append(faces, strconv.Itoa(face))
	}
	return fmt.Sprintf("%d (%s, %s)", res.Check.Rolled, res.Mode, strings.Join(faces, "/"))
}

func overclockNarrative(actor domain.Actor, level int, text string) Narrative {
	return Narrative{
		Header:  fmt.Sprintf("%s is overclocked", actor.Name),
		Image:   imageOverclock,
		Details: []Detail{{Label: "Level", Value: strconv.Itoa(level)}},
		Flavor:  text,
	}
}

func tableNarrative(actor domain.Actor, itemName string, trigger domain.Trigger, draw TableDraw) Narrative {
	n := Narrative{
		Header: fmt.Sprintf("%s: %s", actor.Name, draw.Table),
		Image:  imageMalfunction,
		Details: []Detail{
			{Label: "Roll", Value: strconv.Itoa(draw.Roll)},
		},
		Flavor: draw.Text,
	}
	if itemName != "" {
		n.Details = append([]Detail{{Label: "Item", Value: itemName}}, n.Details...)
	}
	return n
}

// drawFailedNarrative tells the table that a deferred draw did not happen
// and should be retried.
func drawFailedNarrative(actor domain.Actor, itemName string, trigger domain.Trigger, message string) Narrative {
	n := Narrative{
		Header: fmt.Sprintf("%s: %s unavailable", actor.Name, trigger.Table),
		Image:  imageMalfunction,
		Flavor: message,
	}
	if itemName != "" {
		n.Details = []Detail{{Label: "Item", Value: itemName}}
	}
	return n
}

func removalNarrative(actor domain.Actor, item domain.Item) Narrative {
	return Narrative{
		Header:  fmt.Sprintf("%s removes %s", actor.Name, item.Name),
		Details: []Detail{{Label: "Type", Value: domain.Classify(item).String()}},
	}
}

func sanityNarrative(actor domain.Actor, out domain.SanitySaveOutcome) Narrative {
	n := Narrative{
		Header: fmt.Sprintf("%s: sanity save, %s", actor.Name, gradeLabel(out.Grade)),
		Details: []Detail{
			{Label: "Roll", Value: strconv.Itoa(out.Check.Rolled)},
			{Label: "Target", Value: strconv.Itoa(out.Check.Target)},
		},
	}
	if out.ActorPatch.Stress != nil {
		n.Details = append(n.Details, Detail{Label: "Stress", Value: strconv.Itoa(*out.ActorPatch.Stress)})
	}
	return n
}

func skillwareNarrative(actor domain.Actor, item domain.Item, plan domain.SkillwarePlan) Narrative {
	n := Narrative{
		Header: fmt.Sprintf("%s: %s now runs %s", actor.Name, item.Name, plan.Skill),
		Details: []Detail{
			{Label: "Rank", Value: domain.RankName(plan.Rank)},
		},
	}
	if plan.AlreadyPresent {
		n.Flavor = "The skill was already known."
	}
	return n
}
