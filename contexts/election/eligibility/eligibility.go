// Package eligibility holds the pure voter/poll matching rule shared by
// poll creation, voter-facing poll discovery, and analytics. It has no
// side effects and no infrastructure dependencies; callers that count
// eligible voters through a registry query must stay observably equal to
// summing IsEligible over all voters.
package eligibility

import "strings"

// Wildcard marks a poll target dimension that imposes no restriction.
// An empty target value means the same thing.
const Wildcard = "ALL"

// Placement is a voter's academic position.
type Placement struct {
	Year       string
	Section    string
	Department string
}

// Target is a poll's audience rule.
type Target struct {
	Year       string
	Section    string
	Department string
}

// IsEligible reports whether a voter with the given placement may see and
// vote in a poll with the given target. Year must match exactly; section
// and department match when the target dimension is open or equal.
func IsEligible(p Placement, t Target) bool {
	if !strings.EqualFold(strings.TrimSpace(p.Year), strings.TrimSpace(t.Year)) {
		return false
	}
	if !dimensionMatches(p.Section, t.Section) {
		return false
	}
	return dimensionMatches(p.Department, t.Department)
}

// IsOpen reports whether a target dimension value restricts nothing.
func IsOpen(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, Wildcard)
}

func dimensionMatches(have string, want string) bool {
	if IsOpen(want) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want))
}

// Filter is the registry-query form of a target: empty fields impose no
// restriction. Counting voters under Filter(t) is equivalent to counting
// voters v with IsEligible(v, t).
type Filter struct {
	Year       string
	Section    string
	Department string
}

// FilterFor converts a target into its registry filter, dropping open
// dimensions.
func FilterFor(t Target) Filter {
	f := Filter{Year: strings.TrimSpace(t.Year)}
	if !IsOpen(t.Section) {
		f.Section = strings.ToUpper(strings.TrimSpace(t.Section))
	}
	if !IsOpen(t.Department) {
		f.Department = strings.ToUpper(strings.TrimSpace(t.Department))
	}
	return f
}

// Matches applies a filter directly to a placement, used by in-memory
// stores and tests.
func (f Filter) Matches(p Placement) bool {
	if f.Year != "" && !strings.EqualFold(strings.TrimSpace(p.Year), f.Year) {
		return false
	}
	if f.Section != "" && !strings.EqualFold(strings.TrimSpace(p.Section), f.Section) {
		return false
	}
	if f.Department != "" && !strings.EqualFold(strings.TrimSpace(p.Department), f.Department) {
		return false
	}
	return true
}
