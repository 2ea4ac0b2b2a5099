package errors

import "errors"

var (
	ErrInvalidVoteInput = errors.New("invalid vote input")
	ErrPollNotFound     = errors.New("poll not found")
	ErrPollClosed       = errors.New("poll is not active")
	ErrInvalidCandidate = errors.New("candidate is not part of this poll")
	ErrAlreadyVoted     = errors.New("you have already voted in this poll")
)
