package domain

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
)

var (
	// ErrNotACybermod indicates the item classifies as neither cyberware nor slickware.
	ErrNotACybermod = apperrors.New(apperrors.CodeNotACybermod, "item is not a cybermod")
	// ErrAlreadyInstalled indicates the item is already installed.
	ErrAlreadyInstalled = apperrors.New(apperrors.CodeAlreadyInstalled, "item is already installed")
	// ErrSlicksocketRequired indicates slickware needs an installed slicksocket.
	ErrSlicksocketRequired = apperrors.New(apperrors.CodeSlicksocketRequired, "slickware requires an installed slicksocket")
	// ErrTypeMismatch indicates the requested type differs from the classified type.
	ErrTypeMismatch = apperrors.New(apperrors.CodeTypeMismatch, "requested type does not match item type")
	// ErrMissingPrerequisites indicates unmet requirement tokens.
	ErrMissingPrerequisites = apperrors.New(apperrors.CodeMissingPrerequisites, "prerequisites are not met")
	// ErrInsufficientStrength indicates zero cyberware capacity.
	ErrInsufficientStrength = apperrors.New(apperrors.CodeInsufficientStrength, "strength grants no cyberware slots")
	// ErrInsufficientIntellect indicates zero slickware capacity despite a slicksocket.
	ErrInsufficientIntellect = apperrors.New(apperrors.CodeInsufficientIntellect, "intellect grants no slickware slots")
	// ErrNotInstalled indicates the item must be installed first.
	ErrNotInstalled = apperrors.New(apperrors.CodeNotInstalled, "item is not installed")
	// ErrNotOverclockable indicates the item cannot be overclocked.
	ErrNotOverclockable = apperrors.New(apperrors.CodeNotOverclockable, "item cannot be overclocked")
	// ErrNotSkillware indicates the item is not skillware.
	ErrNotSkillware = apperrors.New(apperrors.CodeNotSkillware, "item is not skillware")
	// ErrSkillNotEligible indicates the chosen skill is outside the rank's tiers.
	ErrSkillNotEligible = apperrors.New(apperrors.CodeSkillNotEligible, "skill is not eligible for skillware rank")
	// ErrInvalidType indicates an unknown cybermod type label.
	ErrInvalidType = apperrors.New(apperrors.CodeInvalidType, "cybermod type must be cyberware or slickware")
)

func rejectItem(base *apperrors.Error, item Item, extra map[string]string) *apperrors.Error {
	metadata := map[string]string{"Item": item.Name, "ItemID": item.ID}
	for k, v := range extra {
		metadata[k] = v
	}
	return apperrors.WithMetadata(base.Code, base.Message, metadata)
}

func rankMetadata(rank int, skill string) map[string]string {
	return map[string]string{"Rank": strconv.Itoa(rank), "Skill": skill}
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, ", ")
}
