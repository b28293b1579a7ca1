package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
)

// scriptedRoller returns fixed totals per formula, in order.
type scriptedRoller struct {
	totals map[string][]int
	calls  []string
}

func (r *scriptedRoller) Roll(_ context.Context, formula string) (dice.Result, error) {
	r.calls = append(r.calls, formula)
	queue := r.totals[formula]
	if len(queue) == 0 {
		return dice.Result{}, fmt.Errorf("unexpected roll %q", formula)
	}
	r.totals[formula] = queue[1:]
	return dice.Result{Total: queue[0]}, nil
}

func cyberItem(id, name string, t Type, installed bool) Item {
	return Item{
		ID:    id,
		Name:  name,
		Cyber: Cyber{IsCyber: true, CyberType: t, Installed: installed, SlotCost: 1},
	}.Normalize()
}

func slicksocket(installed bool) Item {
	return cyberItem("socket", "Slicksocket", TypeSlickware, installed)
}

func newActor(strength, intellect int, items ...Item) Actor {
	return Actor{
		ID:     "actor-1",
		Name:   "Ripley",
		Stats:  Stats{Strength: strength, Intellect: intellect},
		Saves:  Saves{Sanity: 30, Body: 40},
		Health: Health{Value: 20, Max: 20},
		Stress: Stress{Value: 3, Min: 2, Max: 20},
		Items:  items,
	}.Normalize()
}

func mustRoller(t *testing.T, totals map[string][]int) *scriptedRoller {
	t.Helper()
	return &scriptedRoller{totals: totals}
}
