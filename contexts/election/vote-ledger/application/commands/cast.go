package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "campusvote/contexts/election/vote-ledger/application"
	"campusvote/contexts/election/vote-ledger/domain/entities"
	domainerrors "campusvote/contexts/election/vote-ledger/domain/errors"
	"campusvote/contexts/election/vote-ledger/ports"
)

// CastVoteCommand is the write-model input for casting a ballot.
type CastVoteCommand struct {
	PollID    string
	VoterID   string
	Candidate string
}

// LedgerUseCase orchestrates vote writes. Double-vote protection is not
// checked up front: the repository insert is the single arbiter and its
// uniqueness violation surfaces as ErrAlreadyVoted, so two concurrent
// casts for the same (poll, voter) cannot both land.
type LedgerUseCase struct {
	Votes     ports.VoteRepository
	Polls     ports.PollReader
	Voters    ports.VoterMarker
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CastVote admits one ballot: the poll must exist and be active, the
// candidate must be on the poll, and the voter must not have cast in it
// before. On success the registry's has-voted flag is set and a
// vote.cast event goes out on the bus.
func (uc LedgerUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	pollID := strings.TrimSpace(cmd.PollID)
	voterID := strings.TrimSpace(cmd.VoterID)
	candidate := strings.TrimSpace(cmd.Candidate)
	if pollID == "" || voterID == "" || candidate == "" {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !poll.IsActive {
		return entities.Vote{}, domainerrors.ErrPollClosed
	}
	if !snapshotHasCandidate(poll, candidate) {
		logger.Warn("vote rejected for unknown candidate",
			"event", "ledger_cast_invalid_candidate",
			"module", "election/vote-ledger",
			"layer", "application",
			"poll_id", pollID,
			"voter_id", voterID,
		)
		return entities.Vote{}, domainerrors.ErrInvalidCandidate
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	vote := entities.Vote{
		ID:        id,
		PollID:    pollID,
		VoterID:   voterID,
		Candidate: candidate,
		CastAt:    uc.now(),
	}
	if err := uc.Votes.Insert(ctx, vote); err != nil {
		return entities.Vote{}, err
	}

	if err := uc.Voters.SetHasVoted(ctx, []string{voterID}, true); err != nil {
		// The ballot is already recorded; the flag update is best-effort.
		logger.Warn("has-voted flag update failed after cast",
			"event", "ledger_cast_flag_update_failed",
			"module", "election/vote-ledger",
			"layer", "application",
			"poll_id", pollID,
			"voter_id", voterID,
			"error", err.Error(),
		)
	}

	uc.publishCast(ctx, vote)

	logger.Info("vote cast",
		"event", "ledger_vote_cast",
		"module", "election/vote-ledger",
		"layer", "application",
		"poll_id", pollID,
		"vote_id", vote.ID,
	)
	return vote, nil
}

// DeleteByPoll removes all votes of a poll, serving the catalogue's
// delete cascade.
func (uc LedgerUseCase) DeleteByPoll(ctx context.Context, pollID string) (int, error) {
	return uc.Votes.DeleteByPoll(ctx, strings.TrimSpace(pollID))
}

// DeleteByVoters removes all votes of the given voters, serving the
// registry's delete cascade.
func (uc LedgerUseCase) DeleteByVoters(ctx context.Context, voterIDs []string) (int, error) {
	return uc.Votes.DeleteByVoters(ctx, voterIDs)
}

func (uc LedgerUseCase) publishCast(ctx context.Context, vote entities.Vote) {
	if uc.Publisher == nil {
		return
	}
	logger := application.ResolveLogger(uc.Logger)
	envelope := newVoteEnvelope(vote.ID, "vote.cast", vote.PollID, vote.CastAt, map[string]any{
		"vote_id":   vote.ID,
		"poll_id":   vote.PollID,
		"voter_id":  vote.VoterID,
		"candidate": vote.Candidate,
		"cast_at":   vote.CastAt.Format(time.RFC3339),
	})
	if err := uc.Publisher.Publish(ctx, TopicVotes, envelope); err != nil {
		logger.Warn("vote.cast publication failed",
			"event", "ledger_publish_failed",
			"module", "election/vote-ledger",
			"layer", "application",
			"vote_id", vote.ID,
			"error", err.Error(),
		)
	}
}

func (uc LedgerUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func snapshotHasCandidate(poll ports.PollSnapshot, candidate string) bool {
	for _, name := range poll.Candidates {
		if name == candidate {
			return true
		}
	}
	return false
}
