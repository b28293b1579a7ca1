package app

import (
	"context"
	"errors"
	"strings"
)

// ErrCancelled is returned by a Prompter when the user dismisses a choice.
var ErrCancelled = errors.New("choice cancelled")

// Step names one question of the installation dialog.
type Step string

const (
	StepStress    Step = "stress"
	StepSkill     Step = "skill"
	StepAdvantage Step = "advantage"
	StepSkillware Step = "skillware"
	stepRolling   Step = "rolling"
)

// Option is one allowed answer.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// InputRequest describes the input a workflow needs before it can resume.
type InputRequest struct {
	AttemptID string   `json:"attempt_id,omitempty"`
	ActorID   string   `json:"actor_id"`
	ItemID    string   `json:"item_id"`
	Step      Step     `json:"step"`
	Prompt    string   `json:"prompt"`
	Options   []Option `json:"options"`
	Default   string   `json:"default,omitempty"`
}

// Allows reports whether value is one of the request's options.
func (r InputRequest) Allows(value string) bool {
	for _, option := range r.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// Match returns the option value equal to value ignoring case.
func (r InputRequest) Match(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, option := range r.Options {
		if strings.EqualFold(option.Value, value) {
			return option.Value, true
		}
	}
	return "", false
}

// Prompter collects one answer from the user.
type Prompter interface {
	Choose(ctx context.Context, request InputRequest) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, request InputRequest) (string, error)

// Choose calls f.
func (f PrompterFunc) Choose(ctx context.Context, request InputRequest) (string, error) {
	return f(ctx, request)
}

// TableDraw is one row drawn from a random table.
type TableDraw struct {
	Table string
	Roll  int
	Text  string
}

// TableRoller draws a random row from a named table. Missing tables report
// CodeLookupNotFound.
type TableRoller interface {
	Draw(ctx context.Context, table string) (TableDraw, error)
}

// Detail is one labeled line of a narrative.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Narrative is structured output for the chat layer to render.
type Narrative struct {
	Header  string   `json:"header"`
	Image   string   `json:"image,omitempty"`
	Details []Detail `json:"details,omitempty"`
	Flavor  string   `json:"flavor,omitempty"`
}

// Narrator renders narrative output.
type Narrator interface {
	Post(ctx context.Context, narrative Narrative) error
}
