package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"campusvote/contexts/election/eligibility"
	application "campusvote/contexts/election/poll-registry/application"
	"campusvote/contexts/election/poll-registry/domain/entities"
	domainerrors "campusvote/contexts/election/poll-registry/domain/errors"
	"campusvote/contexts/election/poll-registry/ports"
)

// PollUseCase orchestrates poll writes: creation with the frozen audience
// snapshot, field updates, activation toggling, and cascading deletion.
type PollUseCase struct {
	Polls  ports.PollRepository
	Voters ports.VoterDirectory
	Votes  ports.VoteReader
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreatePollCommand is the write-model input for poll creation. Target
// section and department accept "ALL" or empty as open dimensions.
type CreatePollCommand struct {
	Title            string
	Description      string
	TargetYear       string
	TargetSection    string
	TargetDepartment string
	Candidates       []string
	CreatedBy        string
}

// CreatePoll validates the audience and candidate list, sizes the eligible
// audience against the current roster, and persists the poll inactive with
// that count frozen. An empty audience rejects the poll outright.
func (uc PollUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)

	poll := entities.Poll{
		Title:            strings.TrimSpace(cmd.Title),
		Description:      strings.TrimSpace(cmd.Description),
		TargetYear:       strings.TrimSpace(cmd.TargetYear),
		TargetSection:    normalizeDimension(cmd.TargetSection),
		TargetDepartment: normalizeDimension(cmd.TargetDepartment),
		Candidates:       trimCandidates(cmd.Candidates),
		CreatedBy:        strings.TrimSpace(cmd.CreatedBy),
	}
	if poll.Title == "" || poll.Description == "" || poll.TargetYear == "" || poll.TargetDepartment == "" {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if len(poll.Candidates) == 0 {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	for _, candidate := range poll.Candidates {
		if candidate == "" {
			return entities.Poll{}, domainerrors.ErrInvalidPollInput
		}
	}

	eligible, err := uc.Voters.CountEligible(ctx, eligibility.FilterFor(poll.Target()))
	if err != nil {
		return entities.Poll{}, err
	}
	if eligible == 0 {
		logger.Warn("poll rejected with empty audience",
			"event", "poll_create_no_eligible_voters",
			"module", "election/poll-registry",
			"layer", "application",
			"target_year", poll.TargetYear,
			"target_section", poll.TargetSection,
			"target_department", poll.TargetDepartment,
		)
		return entities.Poll{}, domainerrors.ErrNoEligibleVoters
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Poll{}, err
	}
	poll.ID = id
	poll.IsActive = false
	poll.EligibleVotersCount = eligible
	poll.CreatedAt = uc.now()

	if err := uc.Polls.Insert(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	logger.Info("poll created",
		"event", "poll_created",
		"module", "election/poll-registry",
		"layer", "application",
		"poll_id", poll.ID,
		"eligible_voters", eligible,
		"candidates", len(poll.Candidates),
	)
	return poll, nil
}

// UpdatePollCommand patches poll fields. Nil/empty fields are left alone;
// a non-nil Candidates slice replaces the whole list. The eligible-voter
// snapshot is not recomputed on update.
type UpdatePollCommand struct {
	PollID           string
	Title            string
	Description      string
	TargetYear       string
	TargetSection    string
	TargetDepartment string
	Candidates       []string
}

func (uc PollUseCase) UpdatePoll(ctx context.Context, cmd UpdatePollCommand) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)
	pollID := strings.TrimSpace(cmd.PollID)
	if pollID == "" {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	poll, err := uc.Polls.Get(ctx, pollID)
	if err != nil {
		return entities.Poll{}, err
	}

	if title := strings.TrimSpace(cmd.Title); title != "" {
		poll.Title = title
	}
	if description := strings.TrimSpace(cmd.Description); description != "" {
		poll.Description = description
	}
	if year := strings.TrimSpace(cmd.TargetYear); year != "" {
		poll.TargetYear = year
	}
	if section := strings.TrimSpace(cmd.TargetSection); section != "" {
		poll.TargetSection = normalizeDimension(section)
	}
	if department := strings.TrimSpace(cmd.TargetDepartment); department != "" {
		poll.TargetDepartment = normalizeDimension(department)
	}
	if cmd.Candidates != nil {
		candidates := trimCandidates(cmd.Candidates)
		if len(candidates) == 0 {
			return entities.Poll{}, domainerrors.ErrInvalidPollInput
		}
		for _, candidate := range candidates {
			if candidate == "" {
				return entities.Poll{}, domainerrors.ErrInvalidPollInput
			}
		}
		poll.Candidates = candidates
	}

	if err := uc.Polls.Update(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	logger.Info("poll updated",
		"event", "poll_updated",
		"module", "election/poll-registry",
		"layer", "application",
		"poll_id", poll.ID,
	)
	return poll, nil
}

// TogglePoll flips the activation flag. The audience is not revalidated;
// a poll whose roster has since emptied simply collects no votes.
func (uc PollUseCase) TogglePoll(ctx context.Context, pollID string, active bool) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)
	pollID = strings.TrimSpace(pollID)
	if pollID == "" {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	poll, err := uc.Polls.Get(ctx, pollID)
	if err != nil {
		return entities.Poll{}, err
	}
	if err := uc.Polls.SetActive(ctx, pollID, active); err != nil {
		return entities.Poll{}, err
	}
	poll.IsActive = active
	logger.Info("poll toggled",
		"event", "poll_toggled",
		"module", "election/poll-registry",
		"layer", "application",
		"poll_id", poll.ID,
		"active", active,
	)
	return poll, nil
}

// DeletePoll removes a poll and its vote rows, dependents first.
func (uc PollUseCase) DeletePoll(ctx context.Context, pollID string) error {
	logger := application.ResolveLogger(uc.Logger)
	pollID = strings.TrimSpace(pollID)
	if pollID == "" {
		return domainerrors.ErrInvalidPollInput
	}
	if _, err := uc.Polls.Get(ctx, pollID); err != nil {
		return err
	}
	if _, err := uc.Votes.DeleteByPoll(ctx, pollID); err != nil {
		return err
	}
	deleted, err := uc.Polls.Delete(ctx, pollID)
	if err != nil {
		return err
	}
	if !deleted {
		return domainerrors.ErrPollNotFound
	}
	logger.Info("poll deleted",
		"event", "poll_deleted",
		"module", "election/poll-registry",
		"layer", "application",
		"poll_id", pollID,
	)
	return nil
}

func (uc PollUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

// normalizeDimension upper-cases a target dimension so "all", "ALL" and
// section/department codes compare consistently.
func normalizeDimension(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func trimCandidates(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, strings.TrimSpace(candidate))
	}
	return out
}
