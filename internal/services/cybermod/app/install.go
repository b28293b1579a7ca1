package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const noSkill = "none"

// BeginRequest starts an installation attempt. A blank Type installs as
// the item's classified type.
type BeginRequest struct {
	ActorID string
	ItemID  string
	Type    domain.Type
}

// Progress is the result of one answer: either the next question or the
// final resolution.
type Progress struct {
	Input      *InputRequest
	Resolution *Resolution
}

// Resolution is a committed installation.
type Resolution struct {
	AttemptID       string
	ActorID         string
	ItemID          string
	ItemName        string
	Type            domain.Type
	StressChoice    int
	Skill           string
	Mode            dice.Mode
	Formula         string
	Faces           []int
	Target          int
	Check           domain.CheckResult
	Outcome         domain.Outcome
	OverclockEffect string
	// SkillChoice asks which skill newly installed skillware grants.
	SkillChoice *InputRequest
	// Skillware is set when Run resolved the skill choice.
	Skillware *domain.SkillwarePlan
}

// Validate checks an installation without starting it.
func (s *Service) Validate(ctx context.Context, actorID, itemID string, requested domain.Type) (domain.Validation, error) {
	actor, item, err := s.loadActorItem(ctx, actorID, itemID)
	if err != nil {
		return domain.Validation{}, err
	}
	return domain.ValidateWithSlots(actor, item, requested, s.rt.Slots.Slots(actor)), nil
}

// Begin validates the request, claims the actor, and returns the first
// question. Validation rejections are returned as errors carrying the
// rejection code; nothing is claimed in that case.
func (s *Service) Begin(ctx context.Context, req BeginRequest) (input InputRequest, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.Begin",
		attribute.String("actor_id", req.ActorID),
		attribute.String("item_id", req.ItemID),
		attribute.String("type", req.Type.String()),
	)
	defer func() { endSpan(span, err) }()

	if err = s.requireEnabled(); err != nil {
		return InputRequest{}, err
	}
	actor, item, err := s.loadActorItem(ctx, req.ActorID, req.ItemID)
	if err != nil {
		return InputRequest{}, err
	}
	validation := domain.ValidateWithSlots(actor, item, req.Type, s.rt.Slots.Slots(actor))
	if !validation.Valid {
		err = validation.Err()
		s.rt.Logger.Info("installation rejected",
			zap.String("actor_id", actor.ID),
			zap.String("item_id", item.ID),
			zap.String("code", string(apperrors.CodeOf(err))),
		)
		return InputRequest{}, err
	}

	attemptID, err := s.rt.NewID()
	if err != nil {
		return InputRequest{}, apperrors.Wrap(apperrors.CodeInternal, "generate attempt id", err)
	}
	attempt := Attempt{
		ID:           attemptID,
		ActorID:      actor.ID,
		ItemID:       item.ID,
		ItemName:     item.Name,
		Type:         validation.Type,
		Step:         StepStress,
		SkillOptions: skillOptions(actor),
	}
	if err = s.pending.claim(attempt); err != nil {
		return InputRequest{}, err
	}
	span.SetAttributes(attribute.String("attempt_id", attemptID))
	s.debug("installation started",
		zap.String("attempt_id", attemptID),
		zap.String("actor_id", actor.ID),
		zap.String("item_id", item.ID),
		zap.Bool("will_overclock", domain.WillCauseOverclock(actor, validation.Type)),
	)
	return inputFor(attempt), nil
}

// Answer records the answer to the attempt's current question. The last
// answer rolls, resolves, and commits. An invalid answer leaves the attempt
// waiting on the same question.
func (s *Service) Answer(ctx context.Context, attemptID, answer string) (progress Progress, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.Answer", attribute.String("attempt_id", attemptID))
	defer func() { endSpan(span, err) }()

	answer = strings.TrimSpace(answer)
	attempt, err := s.pending.advance(attemptID, func(a *Attempt) error {
		return applyAnswer(a, answer)
	})
	if err != nil {
		return Progress{}, err
	}
	span.SetAttributes(attribute.String("step", string(attempt.Step)))
	if attempt.Step != stepRolling {
		next := inputFor(attempt)
		return Progress{Input: &next}, nil
	}

	defer s.pending.release(attempt.ID)
	resolution, err := s.resolve(ctx, attempt)
	if err != nil {
		return Progress{}, err
	}
	return Progress{Resolution: &resolution}, nil
}

// Cancel abandons an attempt before its roll. No document is touched.
func (s *Service) Cancel(ctx context.Context, attemptID string) error {
	_, span := s.startSpan(ctx, "cybermod.Cancel", attribute.String("attempt_id", attemptID))
	defer span.End()
	attempt, ok := s.pending.get(attemptID)
	if !ok || attempt.Step == stepRolling {
		return unknownAttempt(attemptID)
	}
	s.pending.release(attemptID)
	s.debug("installation cancelled", zap.String("attempt_id", attemptID), zap.String("actor_id", attempt.ActorID))
	return nil
}

// Attempt returns a snapshot of a pending attempt.
func (s *Service) Attempt(attemptID string) (Attempt, bool) {
	return s.pending.get(attemptID)
}

func applyAnswer(a *Attempt, answer string) error {
	switch a.Step {
	case StepStress:
		if answer == "" {
			answer = "0"
		}
		points, err := strconv.Atoi(answer)
		if err != nil || points < 0 || points > domain.MaxStressChoice {
			return invalidAnswer(answer)
		}
		a.StressChoice = points
		a.Step = StepSkill
	case StepSkill:
		value := strings.ToLower(answer)
		if value == "" {
			value = noSkill
		}
		if !inputFor(*a).Allows(value) {
			return invalidAnswer(answer)
		}
		if value == noSkill {
			value = ""
		}
		a.Skill = value
		a.Step = StepAdvantage
	case StepAdvantage:
		mode, ok := dice.ParseMode(answer)
		if !ok {
			return invalidAnswer(answer)
		}
		a.Mode = mode
		a.Step = stepRolling
	default:
		return apperrors.WithMetadata(apperrors.CodeInstallationPending, "attempt is already rolling", map[string]string{"Actor": a.ActorID})
	}
	return nil
}

func invalidAnswer(answer string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidAnswer, "invalid answer", map[string]string{"Answer": answer})
}

func inputFor(a Attempt) InputRequest {
	req := InputRequest{AttemptID: a.ID, ActorID: a.ActorID, ItemID: a.ItemID, Step: a.Step}
	switch a.Step {
	case StepStress:
		req.Prompt = fmt.Sprintf("Take stress to steady the installation of %s? Each point adds %d to the target.", a.ItemName, domain.StressPointBonus)
		req.Default = "0"
		for points := 0; points <= domain.MaxStressChoice; points++ {
			label := "No stress"
			if points > 0 {
				label = fmt.Sprintf("+%d stress (+%d)", points, points*domain.StressPointBonus)
			}
			req.Options = append(req.Options, Option{Value: strconv.Itoa(points), Label: label})
		}
	case StepSkill:
		req.Prompt = "Which skill assists the check?"
		req.Default = noSkill
		req.Options = append([]Option{{Value: noSkill, Label: "Body only"}}, a.SkillOptions...)
	case StepAdvantage:
		req.Prompt = "Roll with advantage or disadvantage?"
		req.Default = dice.ModeNormal.String()
		req.Options = []Option{
			{Value: dice.ModeNormal.String(), Label: "Normal"},
			{Value: dice.ModeAdvantage.String(), Label: "Advantage [+]"},
			{Value: dice.ModeDisadvantage.String(), Label: "Disadvantage [-]"},
		}
	}
	return req
}

func skillOptions(actor domain.Actor) []Option {
	var options []Option
	for _, key := range []string{"athletics", "combat", "first_aid"} {
		bonus := domain.SkillBonus(actor, key)
		if bonus == 0 {
			continue
		}
		options = append(options, Option{
			Value: key,
			Label: fmt.Sprintf("%s (+%d)", domain.BodySkills[key], bonus),
		})
	}
	return options
}

// resolve re-reads the actor, rolls, grades, and commits one attempt.
func (s *Service) resolve(ctx context.Context, a Attempt) (res Resolution, err error) {
	ctx, span := s.startSpan(ctx, "cybermod.resolve",
		attribute.String("attempt_id", a.ID),
		attribute.Int("stress_choice", a.StressChoice),
		attribute.String("mode", a.Mode.String()),
	)
	defer func() { endSpan(span, err) }()

	actor, item, err := s.loadActorItem(ctx, a.ActorID, a.ItemID)
	if err != nil {
		return Resolution{}, err
	}
	validation := domain.ValidateWithSlots(actor, item, a.Type, s.rt.Slots.Slots(actor))
	if !validation.Valid {
		err = validation.Err()
		return Resolution{}, err
	}

	target := domain.InstallationTarget(actor, validation.Type, a.Skill, a.StressChoice, s.rt.Settings.InstallationDifficulty)
	formula := dice.PercentileFormula(a.Mode).String()
	roll, err := s.rt.Dice.Roll(ctx, formula)
	if err != nil {
		err = apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "roll installation check", map[string]string{"Formula": formula}, err)
		return Resolution{}, err
	}
	faces := roll.Values()
	check, err := domain.KeepCheck(a.Mode, target, faces)
	if err != nil {
		err = apperrors.Wrap(apperrors.CodeDiceMissing, "installation check", err)
		return Resolution{}, err
	}

	committed := actor
	committed.Stress.Value = actor.Stress.Clamp(actor.Stress.Value + a.StressChoice)
	outcome, err := domain.ResolveOutcome(ctx, domain.OutcomeRequest{
		Actor:       committed,
		Item:        item,
		Type:        validation.Type,
		StressBonus: a.StressChoice * domain.StressPointBonus,
		Check:       check,
		Now:         s.rt.Clock(),
	}, s.rt.Dice)
	if err != nil {
		return Resolution{}, err
	}
	if outcome.ActorPatch.Stress == nil && committed.Stress.Value != actor.Stress.Value {
		stress := committed.Stress.Value
		outcome.ActorPatch.Stress = &stress
	}

	if err = s.commit(ctx, actor, item.ID, outcome.ActorPatch, outcome.ItemPatch); err != nil {
		s.rt.Logger.Warn("installation commit failed",
			zap.String("attempt_id", a.ID),
			zap.String("actor_id", actor.ID),
			zap.Error(err),
		)
		return Resolution{}, err
	}
	span.SetAttributes(attribute.String("grade", outcome.Grade.String()))
	s.rt.Logger.Info("installation resolved",
		zap.String("attempt_id", a.ID),
		zap.String("actor_id", actor.ID),
		zap.String("item_id", item.ID),
		zap.String("grade", outcome.Grade.String()),
		zap.Int("rolled", check.Rolled),
		zap.Int("target", target),
	)

	res = Resolution{
		AttemptID:    a.ID,
		ActorID:      actor.ID,
		ItemID:       item.ID,
		ItemName:     item.Name,
		Type:         validation.Type,
		StressChoice: a.StressChoice,
		Skill:        a.Skill,
		Mode:         a.Mode,
		Formula:      formula,
		Faces:        faces,
		Target:       target,
		Check:        check,
		Outcome:      outcome,
	}
	s.post(ctx, installationNarrative(actor, item, res))
	s.scheduleTriggers(actor.ID, item.Name, outcome.Triggers)

	if outcome.InstallationSuccess {
		res.OverclockEffect = s.announceOverclock(ctx, actor.ID)
		if domain.IsSkillware(item) {
			rank := domain.SkillwareRank(item)
			choice := skillwareInput(actor.ID, item, rank)
			res.SkillChoice = &choice
		}
	}
	return res, nil
}

// announceOverclock re-reads the actor after commit and narrates its
// overclock level when positive.
func (s *Service) announceOverclock(ctx context.Context, actorID string) string {
	fresh, err := s.getActor(ctx, actorID)
	if err != nil {
		s.rt.Logger.Warn("re-read actor for overclock failed", zap.String("actor_id", actorID), zap.Error(err))
		return ""
	}
	mods := domain.InstalledModsWithSlots(fresh, s.rt.Slots.Slots(fresh))
	if !mods.IsOverclocked {
		return ""
	}
	text := domain.LocalizedOverclockEffect(mods.OverclockLevel, s.rt.Settings.Locale)
	s.post(ctx, overclockNarrative(fresh, mods.OverclockLevel, text))
	return text
}

func skillwareInput(actorID string, item domain.Item, rank int) InputRequest {
	req := InputRequest{
		ActorID: actorID,
		ItemID:  item.ID,
		Step:    StepSkillware,
		Prompt:  fmt.Sprintf("Choose the skill %s grants (%s).", item.Name, domain.RankName(rank)),
	}
	for _, skill := range domain.EligibleSkills(rank) {
		req.Options = append(req.Options, Option{Value: skill, Label: skill})
	}
	return req
}

// scheduleTriggers queues table draws. Each draw re-reads the actor so it
// never narrates a stale snapshot.
func (s *Service) scheduleTriggers(actorID, itemName string, triggers []domain.Trigger) {
	for _, trigger := range triggers {
		trigger := trigger
		s.followUps.Schedule(string(trigger.Kind), func(ctx context.Context) error {
			actor, err := s.getActor(ctx, actorID)
			if err != nil {
				return err
			}
			var draw TableDraw
			if s.rt.Tables == nil {
				err = lookupNotFound(trigger.Table, fmt.Errorf("no table roller"))
			} else {
				draw, err = s.rt.Tables.Draw(ctx, trigger.Table)
			}
			if err != nil {
				s.post(ctx, drawFailedNarrative(actor, itemName, trigger, apperrors.UserMessage(err, s.rt.Settings.Locale)))
				return err
			}
			s.post(ctx, tableNarrative(actor, itemName, trigger, draw))
			return nil
		})
	}
}

func (s *Service) post(ctx context.Context, narrative Narrative) {
	if s.rt.Narrator == nil {
		return
	}
	if err := s.rt.Narrator.Post(ctx, narrative); err != nil {
		s.rt.Logger.Warn("post narrative failed", zap.String("header", narrative.Header), zap.Error(err))
	}
}
