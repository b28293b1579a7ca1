// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Installation validation errors
	CodeNotACybermod          Code = "NOT_A_CYBERMOD"
	CodeAlreadyInstalled      Code = "ALREADY_INSTALLED"
	CodeSlicksocketRequired   Code = "SLICKSOCKET_REQUIRED"
	CodeTypeMismatch          Code = "TYPE_MISMATCH"
	CodeMissingPrerequisites  Code = "MISSING_PREREQUISITES"
	CodeInsufficientStrength  Code = "INSUFFICIENT_STRENGTH"
	CodeInsufficientIntellect Code = "INSUFFICIENT_INTELLECT"

	// Installation workflow errors
	CodeInstallationPending   Code = "INSTALLATION_PENDING"
	CodeInstallationCancelled Code = "INSTALLATION_CANCELLED"
	CodeInstallationUnknown   Code = "INSTALLATION_UNKNOWN"
	CodeInvalidAnswer         Code = "INVALID_ANSWER"
	CodeCybermodsDisabled     Code = "CYBERMODS_DISABLED"

	// Item lifecycle errors
	CodeNotInstalled     Code = "NOT_INSTALLED"
	CodeNotOverclockable Code = "NOT_OVERCLOCKABLE"
	CodeNotSkillware     Code = "NOT_SKILLWARE"
	CodeSkillNotEligible Code = "SKILL_NOT_ELIGIBLE"

	// Input errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInvalidType     Code = "INVALID_TYPE"

	// Dice/mechanics errors
	CodeDiceMissing       Code = "DICE_MISSING"
	CodeDiceInvalidSpec   Code = "DICE_INVALID_SPEC"
	CodeDiceInvalidFormat Code = "DICE_INVALID_FORMULA"

	// Collaborator errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeLookupNotFound     Code = "LOOKUP_NOT_FOUND"
	CodeTransientIOFailure Code = "TRANSIENT_IO_FAILURE"
	CodeInternal           Code = "INTERNAL"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeNotACybermod,
		CodeTypeMismatch,
		CodeInvalidAnswer,
		CodeInvalidArgument,
		CodeInvalidType,
		CodeSkillNotEligible,
		CodeNotSkillware,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeDiceInvalidFormat:
		return codes.InvalidArgument

	// FailedPrecondition - actor or item state doesn't allow operation
	case CodeAlreadyInstalled,
		CodeSlicksocketRequired,
		CodeMissingPrerequisites,
		CodeInsufficientStrength,
		CodeInsufficientIntellect,
		CodeNotInstalled,
		CodeNotOverclockable,
		CodeCybermodsDisabled:
		return codes.FailedPrecondition

	// Aborted - concurrent attempt on the same actor
	case CodeInstallationPending:
		return codes.Aborted

	case CodeInstallationCancelled:
		return codes.Canceled

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeLookupNotFound,
		CodeInstallationUnknown:
		return codes.NotFound

	// Unavailable - retryable collaborator failure
	case CodeTransientIOFailure:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}

// IsValidation reports whether the code is a rejection recovered locally
// and shown to the user as a plain message.
func (c Code) IsValidation() bool {
	switch c {
	case CodeNotACybermod,
		CodeAlreadyInstalled,
		CodeSlicksocketRequired,
		CodeTypeMismatch,
		CodeMissingPrerequisites,
		CodeInsufficientStrength,
		CodeInsufficientIntellect:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether the user should be told to retry the attempt.
func (c Code) IsRetryable() bool {
	return c == CodeTransientIOFailure || c == CodeLookupNotFound
}
