package dice

import (
	"context"
	"errors"
	"testing"
)

func TestParseFormula(t *testing.T) {
	tests := []struct {
		formula string
		want    Formula
		wantErr error
	}{
		{formula: "1d100", want: Formula{Spec: Spec{Sides: 100, Count: 1}}},
		{formula: "d5", want: Formula{Spec: Spec{Sides: 5, Count: 1}}},
		{formula: " 3D10 ", want: Formula{Spec: Spec{Sides: 10, Count: 3}}},
		{formula: "1d100 [+]", want: Formula{Spec: Spec{Sides: 100, Count: 1}, Mode: ModeAdvantage}},
		{formula: "1d100 [-]", want: Formula{Spec: Spec{Sides: 100, Count: 1}, Mode: ModeDisadvantage}},
		{formula: "0d6", wantErr: ErrInvalidDiceSpec},
		{formula: "2d0", wantErr: ErrInvalidDiceSpec},
		{formula: "ten", wantErr: ErrInvalidFormula},
		{formula: "xd6", wantErr: ErrInvalidFormula},
		{formula: "2dx", wantErr: ErrInvalidFormula},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got, err := ParseFormula(tt.formula)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseFormula(%q) error = %v, want %v", tt.formula, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormula(%q) error = %v", tt.formula, err)
			}
			if got != tt.want {
				t.Fatalf("ParseFormula(%q) = %+v, want %+v", tt.formula, got, tt.want)
			}
		})
	}
}

func TestFormulaStringRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeAdvantage, ModeDisadvantage} {
		formula := PercentileFormula(mode)
		parsed, err := ParseFormula(formula.String())
		if err != nil {
			t.Fatalf("parse %q: %v", formula.String(), err)
		}
		if parsed != formula {
			t.Fatalf("parsed = %+v, want %+v", parsed, formula)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		value string
		want  Mode
		ok    bool
	}{
		{"", ModeNormal, true},
		{"normal", ModeNormal, true},
		{"Advantage", ModeAdvantage, true},
		{"[-]", ModeDisadvantage, true},
		{"lucky", ModeNormal, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReadPercentile(t *testing.T) {
	tests := []struct {
		value    int
		isDouble bool
		is100    bool
	}{
		{value: 1},
		{value: 10},
		{value: 11, isDouble: true},
		{value: 55, isDouble: true},
		{value: 77, isDouble: true},
		{value: 99, isDouble: true},
		{value: 98},
		{value: 100, isDouble: true, is100: true},
		{value: 0, isDouble: true, is100: true},
	}
	for _, tt := range tests {
		got := ReadPercentile(tt.value)
		if got.IsDouble != tt.isDouble || got.Is100 != tt.is100 {
			t.Errorf("ReadPercentile(%d) = %+v, want double=%v is100=%v", tt.value, got, tt.isDouble, tt.is100)
		}
	}
}

func TestRNGRollerAdvantageRollsTwice(t *testing.T) {
	roller := NewRoller(7)
	result, err := roller.Roll(context.Background(), "1d100 [+]")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	values := result.Values()
	if len(values) != 2 {
		t.Fatalf("values = %v, want two dice", values)
	}
	for _, v := range values {
		if v < 1 || v > 100 {
			t.Fatalf("value %d out of range", v)
		}
	}
}

func TestRNGRollerDeterministicForSeed(t *testing.T) {
	first, err := NewRoller(99).Roll(context.Background(), "3d10")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	second, err := NewRoller(99).Roll(context.Background(), "3d10")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if first.Total != second.Total {
		t.Fatalf("totals differ: %d vs %d", first.Total, second.Total)
	}
}

func TestRNGRollerHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRoller(1).Roll(ctx, "1d6"); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestNewRandomRoller(t *testing.T) {
	roller, err := NewRandomRoller()
	if err != nil {
		t.Fatalf("new random roller: %v", err)
	}
	if _, err := roller.Roll(context.Background(), "1d5"); err != nil {
		t.Fatalf("roll: %v", err)
	}
}
