package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how a two-die percentile roll is kept.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdvantage
	ModeDisadvantage
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAdvantage:
		return "advantage"
	case ModeDisadvantage:
		return "disadvantage"
	default:
		return "unknown"
	}
}

// ParseMode maps a choice label to a Mode. Blank means normal.
func ParseMode(value string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "normal":
		return ModeNormal, true
	case "advantage", "+", "[+]":
		return ModeAdvantage, true
	case "disadvantage", "-", "[-]":
		return ModeDisadvantage, true
	default:
		return ModeNormal, false
	}
}

// Formula is a parsed "NdM" expression with an optional "[+]"/"[-]" suffix.
// Advantage and disadvantage roll the pool twice.
type Formula struct {
	Spec Spec
	Mode Mode
}

// Specs returns the dice to roll for the formula.
func (f Formula) Specs() []Spec {
	if f.Mode == ModeNormal {
		return []Spec{f.Spec}
	}
	return []Spec{f.Spec, f.Spec}
}

// String renders the formula in the notation ParseFormula accepts.
func (f Formula) String() string {
	base := fmt.Sprintf("%dd%d", f.Spec.Count, f.Spec.Sides)
	switch f.Mode {
	case ModeAdvantage:
		return base + " [+]"
	case ModeDisadvantage:
		return base + " [-]"
	default:
		return base
	}
}

// PercentileFormula returns the 1d100 formula for mode.
func PercentileFormula(mode Mode) Formula {
	return Formula{Spec: Spec{Sides: 100, Count: 1}, Mode: mode}
}

// ParseFormula parses "NdM", "dM", "NdM [+]" and "NdM [-]".
func ParseFormula(formula string) (Formula, error) {
	value := strings.ToLower(strings.TrimSpace(formula))
	mode := ModeNormal
	switch {
	case strings.HasSuffix(value, "[+]"):
		mode = ModeAdvantage
		value = strings.TrimSpace(strings.TrimSuffix(value, "[+]"))
	case strings.HasSuffix(value, "[-]"):
		mode = ModeDisadvantage
		value = strings.TrimSpace(strings.TrimSuffix(value, "[-]"))
	}

	countText, sidesText, ok := strings.Cut(value, "d")
	if !ok {
		return Formula{}, fmt.Errorf("%w: %q", ErrInvalidFormula, formula)
	}
	count := 1
	if countText != "" {
		parsed, err := strconv.Atoi(countText)
		if err != nil {
			return Formula{}, fmt.Errorf("%w: %q", ErrInvalidFormula, formula)
		}
		count = parsed
	}
	sides, err := strconv.Atoi(sidesText)
	if err != nil {
		return Formula{}, fmt.Errorf("%w: %q", ErrInvalidFormula, formula)
	}
	if count <= 0 || sides <= 0 {
		return Formula{}, ErrInvalidDiceSpec
	}
	return Formula{Spec: Spec{Sides: sides, Count: count}, Mode: mode}, nil
}
