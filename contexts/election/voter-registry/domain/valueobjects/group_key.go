package valueobjects

import (
	"strings"

	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
)

// GroupKey addresses a voter group for deletion. Year is required; Section
// and Department are optional narrowing dimensions. The structured form
// replaces arity-guessing over dashed strings, which survives only as a
// parser at the transport boundary.
type GroupKey struct {
	Year       string
	Section    string
	Department string
}

// Single-letter section codes used when disambiguating the two-part legacy
// form "year-X": a letter is a section, anything longer is a department.
var sectionLetters = map[string]bool{
	"A": true, "B": true, "C": true, "D": true, "E": true, "F": true,
}

// ParseGroupKey accepts the legacy dashed encoding: "3-A-ADS" (year,
// section, department), "3-A" / "3-ADS" (year plus section or department),
// or "3" (year only).
func ParseGroupKey(raw string) (GroupKey, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return GroupKey{}, domainerrors.ErrInvalidGroupKey
	}
	parts := strings.Split(trimmed, "-")
	for i := range parts {
		parts[i] = strings.ToUpper(strings.TrimSpace(parts[i]))
		if parts[i] == "" {
			return GroupKey{}, domainerrors.ErrInvalidGroupKey
		}
	}
	switch len(parts) {
	case 1:
		return GroupKey{Year: parts[0]}, nil
	case 2:
		if sectionLetters[parts[1]] {
			return GroupKey{Year: parts[0], Section: parts[1]}, nil
		}
		return GroupKey{Year: parts[0], Department: parts[1]}, nil
	case 3:
		return GroupKey{Year: parts[0], Section: parts[1], Department: parts[2]}, nil
	default:
		return GroupKey{}, domainerrors.ErrInvalidGroupKey
	}
}

func (k GroupKey) String() string {
	parts := []string{k.Year}
	if k.Section != "" {
		parts = append(parts, k.Section)
	}
	if k.Department != "" {
		parts = append(parts, k.Department)
	}
	return strings.Join(parts, "-")
}

func (k GroupKey) IsZero() bool {
	return strings.TrimSpace(k.Year) == ""
}
