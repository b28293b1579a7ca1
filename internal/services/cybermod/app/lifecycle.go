package app

import (
	"context"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Inspection is a read-only view of an actor's cybermods.
type Inspection struct {
	Actor           domain.Actor
	Slots           domain.Slots
	Installed       domain.Installed
	OverclockEffect string
	// Installable lists items that would pass validation as classified.
	Installable []domain.Item
}

// Inspect summarizes an actor's slots and installed mods.
func (s *Service) Inspect(ctx context.Context, actorID string) (Inspection, error) {
	ctx, span := s.startSpan(ctx, "cybermod.Inspect", attribute.String("actor_id", actorID))
	defer span.End()
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		endSpan(span, err)
		return Inspection{}, err
	}
	slots := s.rt.Slots.Slots(actor)
	mods := domain.InstalledModsWithSlots(actor, slots)
	out := Inspection{Actor: actor, Slots: slots, Installed: mods}
	if mods.IsOverclocked {
		out.OverclockEffect = domain.LocalizedOverclockEffect(mods.OverclockLevel, s.rt.Settings.Locale)
	}
	for _, item := range actor.Items {
		if domain.ValidateWithSlots(actor, item, domain.TypeNone, slots).Valid {
			out.Installable = append(out.Installable, item)
		}
	}
	return out, nil
}

// RemoveResult reports a removal.
type RemoveResult struct {
	ItemPatch domain.ItemPatch
}

// RemoveMod uninstalls an item.
func (s *Service) RemoveMod(ctx context.Context, actorID, itemID string) (res RemoveResult, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.RemoveMod", attribute.String("actor_id", actorID), attribute.String("item_id", itemID))
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockActor(actorID)
	if err != nil {
		return RemoveResult{}, err
	}
	defer unlock()

	actor, item, err := s.loadActorItem(ctx, actorID, itemID)
	if err != nil {
		return RemoveResult{}, err
	}
	patch, err := domain.PlanRemoval(item, s.rt.Clock())
	if err != nil {
		return RemoveResult{}, err
	}
	if err = s.commit(ctx, actor, item.ID, domain.ActorPatch{}, patch); err != nil {
		return RemoveResult{}, err
	}
	s.rt.Logger.Info("cybermod removed", zap.String("actor_id", actor.ID), zap.String("item_id", item.ID))
	s.post(ctx, removalNarrative(actor, item))
	return RemoveResult{ItemPatch: patch}, nil
}

// OverclockResult reports an overclock.
type OverclockResult struct {
	Plan   domain.OverclockPlan
	Level  int
	Effect string
}

// OverclockItem pushes an installed item past its rating.
// Overclocking an item twice changes nothing.
func (s *Service) OverclockItem(ctx context.Context, actorID, itemID string) (res OverclockResult, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.OverclockItem", attribute.String("actor_id", actorID), attribute.String("item_id", itemID))
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockActor(actorID)
	if err != nil {
		return OverclockResult{}, err
	}
	defer unlock()

	actor, item, err := s.loadActorItem(ctx, actorID, itemID)
	if err != nil {
		return OverclockResult{}, err
	}
	plan, err := domain.PlanOverclockItem(item)
	if err != nil {
		return OverclockResult{}, err
	}
	res = OverclockResult{Plan: plan, Level: domain.OverclockLevel(actor)}
	if !plan.Changed {
		return res, nil
	}
	if err = s.commit(ctx, actor, item.ID, domain.ActorPatch{}, plan.ItemPatch); err != nil {
		return OverclockResult{}, err
	}
	projected := actor.WithPatch(item.ID, plan.ItemPatch)
	res.Level = domain.OverclockLevel(projected)
	if res.Level > 0 {
		res.Effect = domain.LocalizedOverclockEffect(res.Level, s.rt.Settings.Locale)
	}
	s.rt.Logger.Info("cybermod overclocked",
		zap.String("actor_id", actor.ID),
		zap.String("item_id", item.ID),
		zap.Int("level", res.Level),
	)
	return res, nil
}

// SanitySaveResult reports a standalone sanity save.
type SanitySaveResult struct {
	Outcome domain.SanitySaveOutcome
}

// SanitySave rolls the actor's sanity save. A fumble schedules a panic draw.
func (s *Service) SanitySave(ctx context.Context, actorID string) (res SanitySaveResult, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.SanitySave", attribute.String("actor_id", actorID))
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockActor(actorID)
	if err != nil {
		return SanitySaveResult{}, err
	}
	defer unlock()

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return SanitySaveResult{}, err
	}
	formula := dice.PercentileFormula(dice.ModeNormal).String()
	roll, err := s.rt.Dice.Roll(ctx, formula)
	if err != nil {
		return SanitySaveResult{}, apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "roll sanity save", map[string]string{"Formula": formula}, err)
	}
	out := domain.ResolveSanitySave(actor, roll.Total)
	if err = s.commit(ctx, actor, "", out.ActorPatch, domain.ItemPatch{}); err != nil {
		return SanitySaveResult{}, err
	}
	s.post(ctx, sanityNarrative(actor, out))
	s.scheduleTriggers(actor.ID, "", out.Triggers)
	return SanitySaveResult{Outcome: out}, nil
}

// ResolveSkillware binds a skill to installed skillware. The skill item is
// created before the skillware is patched so a retried call converges.
func (s *Service) ResolveSkillware(ctx context.Context, actorID, itemID, skill string) (plan domain.SkillwarePlan, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.ResolveSkillware",
		attribute.String("actor_id", actorID),
		attribute.String("item_id", itemID),
		attribute.String("skill", skill),
	)
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockActor(actorID)
	if err != nil {
		return domain.SkillwarePlan{}, err
	}
	defer unlock()

	actor, item, err := s.loadActorItem(ctx, actorID, itemID)
	if err != nil {
		return domain.SkillwarePlan{}, err
	}
	if domain.IsSkillware(item) && !domain.IsInstalled(item) {
		err = apperrors.WithMetadata(apperrors.CodeNotInstalled, "skillware is not installed", map[string]string{"Item": item.Name, "ItemID": item.ID})
		return domain.SkillwarePlan{}, err
	}
	plan, err = domain.PlanSkillware(actor, item, skill, s.rt.NewID)
	if err != nil {
		return domain.SkillwarePlan{}, err
	}
	if plan.NewSkill != nil {
		callCtx, cancel := context.WithTimeout(ctx, timeouts.DocumentCall)
		createErr := s.rt.Store.CreateItem(callCtx, actor.ID, *plan.NewSkill)
		cancel()
		if createErr != nil {
			err = writeError("item", plan.NewSkill.ID, createErr)
			return domain.SkillwarePlan{}, err
		}
	}
	if err = s.commit(ctx, actor, item.ID, domain.ActorPatch{}, plan.SkillwarePatch); err != nil {
		return domain.SkillwarePlan{}, err
	}
	s.rt.Logger.Info("skillware resolved",
		zap.String("actor_id", actor.ID),
		zap.String("item_id", item.ID),
		zap.String("skill", plan.Skill),
		zap.Int("rank", plan.Rank),
		zap.Bool("already_present", plan.AlreadyPresent),
	)
	s.post(ctx, skillwareNarrative(actor, item, plan))
	return plan, nil
}

// lockActor claims the actor for a one-shot mutation.
func (s *Service) lockActor(actorID string) (func(), error) {
	if err := s.requireEnabled(); err != nil {
		return nil, err
	}
	token, err := s.rt.NewID()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "generate lock token", err)
	}
	return s.pending.lock(actorID, token)
}
