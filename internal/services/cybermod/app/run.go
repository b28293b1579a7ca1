package app

import (
	"context"
	"errors"
	"strconv"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"go.uber.org/zap"
)

// maxPromptRetries bounds how often an invalid answer is asked again.
const maxPromptRetries = 3

// Run drives a full installation dialog through prompter. Dismissing any
// question before the roll cancels the attempt without touching documents.
// Dismissing the skillware choice after a successful install leaves the
// skillware inactive.
func (s *Service) Run(ctx context.Context, req BeginRequest, prompter Prompter) (Resolution, error) {
	if prompter == nil {
		return Resolution{}, apperrors.New(apperrors.CodeInvalidArgument, "prompter is required")
	}
	input, err := s.Begin(ctx, req)
	if err != nil {
		return Resolution{}, err
	}
	for {
		answer, err := s.ask(ctx, prompter, input)
		if err != nil {
			if cancelErr := s.Cancel(ctx, input.AttemptID); cancelErr != nil {
				s.rt.Logger.Warn("cancel attempt failed", zap.String("attempt_id", input.AttemptID), zap.Error(cancelErr))
			}
			return Resolution{}, err
		}
		progress, err := s.Answer(ctx, input.AttemptID, answer)
		if err != nil {
			// Rolled attempts are already released; this only clears one
			// still waiting on a question.
			_ = s.Cancel(ctx, input.AttemptID)
			return Resolution{}, err
		}
		if progress.Input != nil {
			input = *progress.Input
			continue
		}
		res := *progress.Resolution
		if res.SkillChoice == nil {
			return res, nil
		}
		skill, err := s.ask(ctx, prompter, *res.SkillChoice)
		if err != nil {
			if errors.Is(err, ErrInstallationCancelled) {
				s.rt.Logger.Info("skillware left inactive", zap.String("actor_id", res.ActorID), zap.String("item_id", res.ItemID))
				return res, nil
			}
			return res, err
		}
		plan, err := s.ResolveSkillware(ctx, res.ActorID, res.ItemID, skill)
		if err != nil {
			return res, err
		}
		res.Skillware = &plan
		return res, nil
	}
}

// ask prompts until an allowed answer arrives. A dismissed prompt maps to
// ErrInstallationCancelled.
func (s *Service) ask(ctx context.Context, prompter Prompter, input InputRequest) (string, error) {
	var last string
	for attempt := 0; attempt < maxPromptRetries; attempt++ {
		promptCtx, cancel := context.WithTimeout(ctx, timeouts.Prompt)
		answer, err := prompter.Choose(promptCtx, input)
		cancel()
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return "", ErrInstallationCancelled
			}
			return "", err
		}
		if answer == "" {
			answer = input.Default
		}
		if value, ok := input.Match(answer); ok {
			return value, nil
		}
		if acceptsAlias(input.Step, answer) {
			return answer, nil
		}
		last = answer
		s.debug("invalid answer", zap.String("step", string(input.Step)), zap.String("answer", answer))
	}
	return "", invalidAnswer(last)
}

func acceptsAlias(step Step, answer string) bool {
	if step != StepAdvantage {
		return false
	}
	_, ok := dice.ParseMode(answer)
	return ok
}

// Answers are pre-chosen replies for a non-interactive installation.
type Answers struct {
	StressChoice int
	Skill        string
	Mode         dice.Mode
	// Skillware is the skill bound to newly installed skillware. Blank leaves
	// it inactive.
	Skillware string
}

// Install runs the dialog with fixed answers.
func (s *Service) Install(ctx context.Context, req BeginRequest, answers Answers) (Resolution, error) {
	return s.Run(ctx, req, PrompterFunc(func(_ context.Context, input InputRequest) (string, error) {
		switch input.Step {
		case StepStress:
			return strconv.Itoa(answers.StressChoice), nil
		case StepSkill:
			if answers.Skill == "" {
				return noSkill, nil
			}
			return answers.Skill, nil
		case StepAdvantage:
			return answers.Mode.String(), nil
		case StepSkillware:
			if answers.Skillware == "" {
				return "", ErrCancelled
			}
			return answers.Skillware, nil
		default:
			return "", ErrCancelled
		}
	}))
}
