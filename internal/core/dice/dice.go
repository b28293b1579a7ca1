// Package dice implements the dice primitives behind cybermod checks:
// NdM pools, percentile rolls, and advantage/disadvantage formulas.
package dice

import "errors"

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// ErrInvalidFormula indicates a formula string could not be parsed.
var ErrInvalidFormula = errors.New("dice formula must look like NdM")

// Spec describes a die to roll and how many times to roll it.
type Spec struct {
	Sides int
	Count int
}

// Roll captures the results for a single dice spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result captures the results from rolling multiple dice.
type Result struct {
	Rolls []Roll
	Total int
}

// Values returns every individual die result in roll order.
func (r Result) Values() []int {
	var values []int
	for _, roll := range r.Rolls {
		values = append(values, roll.Results...)
	}
	return values
}
