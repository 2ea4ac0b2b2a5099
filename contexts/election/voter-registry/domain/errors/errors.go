package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVoterInput = errors.New("invalid voter input")
	ErrDuplicateVoter    = errors.New("voter with this regNo or email already exists")
	ErrVoterNotFound     = errors.New("voter not found")
	ErrGroupNotFound     = errors.New("no voters found for this group")
	ErrInvalidGroupKey   = errors.New("invalid group key")
	ErrEmptySelection    = errors.New("no voters matched the selection")
	ErrInvalidAction     = errors.New("invalid bulk action")
)

// MaxValidationSamples bounds how many row-level messages a validation
// failure reports back to the caller.
const MaxValidationSamples = 10

// ValidationReport rejects a whole roster batch. Samples holds at most
// MaxValidationSamples row messages; Total is the full error count.
type ValidationReport struct {
	Total   int
	Samples []string
}

func (r *ValidationReport) Error() string {
	return fmt.Sprintf("found %d validation errors", r.Total)
}

// NewValidationReport trims the message list to the sample bound.
func NewValidationReport(messages []string) *ValidationReport {
	report := &ValidationReport{Total: len(messages)}
	if len(messages) > MaxValidationSamples {
		messages = messages[:MaxValidationSamples]
	}
	report.Samples = append(report.Samples, messages...)
	return report
}

// DuplicateReport rejects a roster batch that collides with existing
// registry rows. It unwraps to ErrDuplicateVoter.
type DuplicateReport struct {
	Count int
}

func (r *DuplicateReport) Error() string {
	return fmt.Sprintf("found %d existing voters with duplicate registration numbers or emails", r.Count)
}

func (r *DuplicateReport) Unwrap() error {
	return ErrDuplicateVoter
}
