package domain

import (
	"strconv"

	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
)

// Validation is the validator's verdict. Rejections carry a domain error
// as a value; they never abort the caller.
type Validation struct {
	Valid   bool
	Reason  *apperrors.Error
	Missing []string
	// Type is the effective type the installation proceeds with.
	Type Type
}

// Err returns the rejection as an error, or nil when valid.
func (v Validation) Err() error {
	if v.Valid || v.Reason == nil {
		return nil
	}
	return v.Reason
}

// Validate gatekeeps an installation attempt. A blank requested type uses
// the item's classified type.
func Validate(actor Actor, item Item, requested Type) Validation {
	return ValidateWithSlots(actor, item, requested, CalculateSlots(actor))
}

// ValidateWithSlots validates using precomputed slots. Checks run in order
// and the first failure wins. Overflowing a nonzero capacity is allowed.
func ValidateWithSlots(actor Actor, item Item, requested Type, slots Slots) Validation {
	classified := Classify(item)
	if classified == TypeNone {
		return reject(ErrNotACybermod, item, nil)
	}
	if IsInstalled(item) {
		return reject(ErrAlreadyInstalled, item, nil)
	}
	if requested == TypeNone {
		requested = classified
	}
	if requested == TypeSlickware && !slots.HasSlicksocket {
		return reject(ErrSlicksocketRequired, item, nil)
	}
	if classified != requested {
		return reject(ErrTypeMismatch, item, map[string]string{
			"Actual":    classified.String(),
			"Requested": requested.String(),
		})
	}
	if missing := MissingPrerequisites(actor, item.Cyber.Requirements); len(missing) > 0 {
		v := reject(ErrMissingPrerequisites, item, map[string]string{
			"Missing": joinTokens(missing),
			"Count":   strconv.Itoa(len(missing)),
		})
		v.Missing = missing
		return v
	}
	if requested == TypeCyberware && slots.Cyberware == 0 {
		return reject(ErrInsufficientStrength, item, nil)
	}
	if requested == TypeSlickware && slots.Slickware == 0 && slots.HasSlicksocket {
		return reject(ErrInsufficientIntellect, item, nil)
	}
	return Validation{Valid: true, Type: requested}
}

func reject(base *apperrors.Error, item Item, extra map[string]string) Validation {
	return Validation{Reason: rejectItem(base, item, extra)}
}
