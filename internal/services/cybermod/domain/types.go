package domain

import (
	"strings"

	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
)

// Type is a cybermod category. TypeNone means "not a cybermod".
type Type string

const (
	TypeNone      Type = ""
	TypeCyberware Type = "cyberware"
	TypeSlickware Type = "slickware"
)

// Valid reports whether t is cyberware or slickware.
func (t Type) Valid() bool {
	return t == TypeCyberware || t == TypeSlickware
}

func (t Type) String() string {
	if t == TypeNone {
		return "none"
	}
	return string(t)
}

// ParseType parses a cybermod type label.
func ParseType(value string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(value))); t {
	case TypeCyberware, TypeSlickware:
		return t, nil
	default:
		return TypeNone, apperrors.WithMetadata(ErrInvalidType.Code, ErrInvalidType.Message, map[string]string{"Type": value})
	}
}

// Kind is the host item type.
type Kind string

const (
	KindItem   Kind = "item"
	KindWeapon Kind = "weapon"
	KindArmor  Kind = "armor"
	KindSkill  Kind = "skill"
)
