package domain

// SanitySaveOutcome is the plan of a standalone sanity save.
type SanitySaveOutcome struct {
	Grade      Grade
	Check      CheckResult
	ActorPatch ActorPatch
	Triggers   []Trigger
}

// ResolveSanitySave grades a percentile roll against the sanity save. A
// failure adds one stress; a fumble also schedules a panic check.
func ResolveSanitySave(actor Actor, rolled int) SanitySaveOutcome {
	actor = actor.Normalize()
	c := CheckFromRoll(rolled, actor.Saves.Sanity)
	out := SanitySaveOutcome{Grade: GradeCheck(c), Check: c}
	if out.Grade.Succeeded() {
		return out
	}
	if stress := actor.Stress.Clamp(actor.Stress.Value + 1); stress != actor.Stress.Value {
		out.ActorPatch.Stress = intPtr(stress)
	}
	if out.Grade == GradeFumble {
		out.Triggers = []Trigger{panicTrigger("")}
	}
	return out
}
