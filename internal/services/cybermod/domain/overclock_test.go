package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
)

func TestOverclockEffectText(t *testing.T) {
	if OverclockEffectText(0) != "" || OverclockEffectText(-1) != "" {
		t.Fatal("expected no text at level 0 and below")
	}
	for level := 1; level <= 5; level++ {
		if OverclockEffectText(level) == "" {
			t.Fatalf("level %d has no text", level)
		}
	}
	if OverclockEffectText(8) != OverclockEffectText(5) {
		t.Fatal("expected levels above 5 to reuse level 5")
	}
	if !strings.Contains(LocalizedOverclockEffect(1, "fr-FR"), "Stress minimum") {
		t.Fatalf("fr-FR level 1 = %q", LocalizedOverclockEffect(1, "fr-FR"))
	}
}

func TestWillCauseOverclock(t *testing.T) {
	actor := newActor(10, 0, cyberItem("a", "Fangs", TypeCyberware, true))
	if !WillCauseOverclock(actor, TypeCyberware) {
		t.Fatal("expected second cyberware to overclock")
	}
	if WillCauseOverclock(newActor(20, 0), TypeCyberware) {
		t.Fatal("expected first cyberware to fit")
	}
	if WillCauseOverclock(actor, TypeNone) {
		t.Fatal("expected none type never to overclock")
	}
}

func TestPlanOverclockItem(t *testing.T) {
	overclockable := cyberItem("a", "Synth Muscle", TypeCyberware, true)
	overclockable.Cyber.CanOverclock = true

	plan, err := PlanOverclockItem(overclockable)
	if err != nil {
		t.Fatalf("PlanOverclockItem() error = %v", err)
	}
	want := OverclockPlan{ItemPatch: ItemPatch{Overclocked: boolPtr(true)}, Changed: true}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}

	already := overclockable
	already.Cyber.Overclocked = true
	if plan, err := PlanOverclockItem(already); err != nil || plan.Changed {
		t.Fatalf("already overclocked plan = %+v, %v", plan, err)
	}

	plain := cyberItem("b", "Fangs", TypeCyberware, true)
	if _, err := PlanOverclockItem(plain); apperrors.CodeOf(err) != apperrors.CodeNotOverclockable {
		t.Fatalf("error = %v, want not overclockable", err)
	}
	uninstalled := overclockable
	uninstalled.Cyber.Installed = false
	if _, err := PlanOverclockItem(uninstalled); apperrors.CodeOf(err) != apperrors.CodeNotInstalled {
		t.Fatalf("error = %v, want not installed", err)
	}
}

func TestPlanRemoval(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	item := cyberItem("a", "Fangs", TypeCyberware, true)
	item.Cyber.Overclocked = true

	patch, err := PlanRemoval(item, now)
	if err != nil {
		t.Fatalf("PlanRemoval() error = %v", err)
	}
	removed := patch.Apply(item)
	if removed.Cyber.Installed || removed.Cyber.Overclocked || !removed.Flags.RemovedDate.Equal(now) {
		t.Fatalf("removed item = %+v", removed)
	}
	if Classify(removed) != TypeCyberware {
		t.Fatal("expected removed item to keep its classification")
	}
	if _, err := PlanRemoval(removed, now); apperrors.CodeOf(err) != apperrors.CodeNotInstalled {
		t.Fatalf("error = %v, want not installed", err)
	}
}
