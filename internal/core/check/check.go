// Package check grades roll-under percentile checks.
package check

// Succeeds reports whether rolled is strictly under target. Equality fails.
func Succeeds(rolled, target int) bool {
	return rolled < target
}

// Margin is how far under the target the roll landed. Positive values are
// successes, zero and negative values are failures.
func Margin(rolled, target int) int {
	return target - rolled
}

// Result represents the outcome of a roll-under check.
type Result struct {
	Success  bool
	Critical bool
	Margin   int
}

// RollUnder grades a percentile roll. A 00 always succeeds critically, and
// any double is critical whichever way it lands.
func RollUnder(rolled, target int, isDouble, is100 bool) Result {
	success := is100 || Succeeds(rolled, target)
	return Result{
		Success:  success,
		Critical: is100 || isDouble,
		Margin:   Margin(rolled, target),
	}
}
