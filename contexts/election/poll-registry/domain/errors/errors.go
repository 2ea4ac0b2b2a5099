package errors

import "errors"

var (
	ErrInvalidPollInput = errors.New("invalid poll input")
	ErrPollNotFound     = errors.New("poll not found")
	ErrNoEligibleVoters = errors.New("no eligible voters found for the selected target criteria")
	ErrVoterNotFound    = errors.New("voter not found")
)
