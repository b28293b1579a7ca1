package dice

import "math/rand"

// RollWithRng rolls every spec on rng. All specs are checked before the
// first die is rolled, so an invalid pool consumes no randomness.
//
// Each Roll.Total is the sum of its Results; Result.Total sums every die.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}
	}

	result := Result{Rolls: make([]Roll, 0, len(specs))}
	for _, spec := range specs {
		roll := Roll{Sides: spec.Sides, Results: make([]int, spec.Count)}
		for i := range roll.Results {
			roll.Results[i] = rng.Intn(spec.Sides) + 1
			roll.Total += roll.Results[i]
		}
		result.Rolls = append(result.Rolls, roll)
		result.Total += roll.Total
	}
	return result, nil
}
