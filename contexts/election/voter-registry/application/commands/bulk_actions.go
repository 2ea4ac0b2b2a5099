package commands

import (
	"context"
	"fmt"
	"strings"

	application "campusvote/contexts/election/voter-registry/application"
	"campusvote/contexts/election/voter-registry/domain/entities"
	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
	"campusvote/contexts/election/voter-registry/domain/services"
	"campusvote/contexts/election/voter-registry/domain/valueobjects"
	"campusvote/contexts/election/voter-registry/ports"
)

type BulkAction string

const (
	ActionSendCredentials BulkAction = "send-credentials"
	ActionResetPasswords  BulkAction = "reset-passwords"
	ActionMarkVoted       BulkAction = "mark-voted"
	ActionMarkNotVoted    BulkAction = "mark-not-voted"
	ActionDelete          BulkAction = "delete"
)

// BulkActionCommand selects voters either by explicit ids or by an
// academic-placement filter; ids win when both are present.
type BulkActionCommand struct {
	Action   BulkAction
	VoterIDs []string
	Filter   ports.VoterFilter
}

// BulkActionResult reports the selection size plus, for credential
// delivery, how many mails actually went out.
type BulkActionResult struct {
	Count     int
	SentCount int
	Message   string
}

// BulkAction applies an admin action to a voter selection. The selection
// must be non-empty; credential delivery failures are tolerated and
// surface only through SentCount.
func (uc VoterUseCase) BulkAction(ctx context.Context, cmd BulkActionCommand) (BulkActionResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	var targets []entities.Voter
	var err error
	if len(cmd.VoterIDs) > 0 {
		targets, err = uc.Voters.GetByIDs(ctx, cmd.VoterIDs)
	} else {
		targets, err = uc.Voters.List(ctx, cmd.Filter)
	}
	if err != nil {
		return BulkActionResult{}, err
	}
	if len(targets) == 0 {
		return BulkActionResult{}, domainerrors.ErrEmptySelection
	}

	result := BulkActionResult{Count: len(targets)}
	switch cmd.Action {
	case ActionSendCredentials:
		result.SentCount = uc.sendCredentials(ctx, targets)
		result.Message = fmt.Sprintf("Credentials sent to %d out of %d voters", result.SentCount, len(targets))

	case ActionResetPasswords:
		passwords := make(map[string]string, len(targets))
		for _, voter := range targets {
			password, err := services.GenerateCredential(services.CredentialLength)
			if err != nil {
				return BulkActionResult{}, err
			}
			passwords[voter.ID] = password
		}
		if err := uc.Voters.SetPasswords(ctx, passwords); err != nil {
			return BulkActionResult{}, err
		}
		result.Message = fmt.Sprintf("Passwords reset for %d voters", len(targets))

	case ActionMarkVoted, ActionMarkNotVoted:
		ids := voterIDs(targets)
		if err := uc.Voters.SetHasVoted(ctx, ids, cmd.Action == ActionMarkVoted); err != nil {
			return BulkActionResult{}, err
		}
		state := "voted"
		if cmd.Action == ActionMarkNotVoted {
			state = "not voted"
		}
		result.Message = fmt.Sprintf("Marked %d voters as %s", len(targets), state)

	case ActionDelete:
		ids := voterIDs(targets)
		// Votes go first so a failure cannot orphan ledger rows.
		if _, err := uc.Votes.DeleteByVoters(ctx, ids); err != nil {
			return BulkActionResult{}, err
		}
		if _, err := uc.Voters.Delete(ctx, ids); err != nil {
			return BulkActionResult{}, err
		}
		result.Message = fmt.Sprintf("Deleted %d voters and their votes", len(targets))

	default:
		return BulkActionResult{}, domainerrors.ErrInvalidAction
	}

	logger.Info("bulk action applied",
		"event", "registry_bulk_action_applied",
		"module", "election/voter-registry",
		"layer", "application",
		"action", string(cmd.Action),
		"count", result.Count,
		"sent", result.SentCount,
	)
	return result, nil
}

// DeleteGroupResult reports a group deletion.
type DeleteGroupResult struct {
	DeletedCount int
}

// DeleteGroup removes every voter matching the group key and cascades
// their vote rows.
func (uc VoterUseCase) DeleteGroup(ctx context.Context, key valueobjects.GroupKey) (DeleteGroupResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if key.IsZero() {
		return DeleteGroupResult{}, domainerrors.ErrInvalidGroupKey
	}
	targets, err := uc.Voters.List(ctx, ports.VoterFilter{
		Year:       key.Year,
		Section:    key.Section,
		Department: key.Department,
	})
	if err != nil {
		return DeleteGroupResult{}, err
	}
	if len(targets) == 0 {
		return DeleteGroupResult{}, domainerrors.ErrGroupNotFound
	}

	ids := voterIDs(targets)
	if _, err := uc.Votes.DeleteByVoters(ctx, ids); err != nil {
		return DeleteGroupResult{}, err
	}
	deleted, err := uc.Voters.Delete(ctx, ids)
	if err != nil {
		return DeleteGroupResult{}, err
	}
	logger.Info("voter group deleted",
		"event", "registry_group_deleted",
		"module", "election/voter-registry",
		"layer", "application",
		"group", key.String(),
		"deleted", deleted,
	)
	return DeleteGroupResult{DeletedCount: deleted}, nil
}

func (uc VoterUseCase) sendCredentials(ctx context.Context, targets []entities.Voter) int {
	logger := application.ResolveLogger(uc.Logger)
	if uc.Mailer == nil {
		return 0
	}
	loginURL := uc.LoginURL
	if loginURL == "" {
		loginURL = "http://localhost:8080"
	}
	sent := 0
	for _, voter := range targets {
		body := credentialMailBody(voter, loginURL)
		if err := uc.Mailer.Send(ctx, voter.Email, "Your Voting Credentials - Election System", body); err != nil {
			logger.Warn("credential delivery failed",
				"event", "registry_credential_delivery_failed",
				"module", "election/voter-registry",
				"layer", "application",
				"voter_id", voter.ID,
				"error", err.Error(),
			)
			continue
		}
		sent++
	}
	return sent
}

func credentialMailBody(voter entities.Voter, loginURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", voter.Name)
	b.WriteString("Your voting credentials for the election system:\n\n")
	fmt.Fprintf(&b, "Registration Number: %s\n", voter.RegNo)
	fmt.Fprintf(&b, "Email: %s\n", voter.Email)
	fmt.Fprintf(&b, "Password: %s\n", voter.Password)
	fmt.Fprintf(&b, "Year: %s\n", voter.Year)
	fmt.Fprintf(&b, "Section: %s\n", voter.Section)
	fmt.Fprintf(&b, "Department: %s\n\n", voter.Department)
	b.WriteString("Please use these credentials to log in to the voting system and cast your vote.\n\n")
	fmt.Fprintf(&b, "Login URL: %s\n\n", loginURL)
	b.WriteString("Best regards,\nElection Committee\n")
	return b.String()
}

func voterIDs(voters []entities.Voter) []string {
	ids := make([]string, 0, len(voters))
	for _, voter := range voters {
		ids = append(ids, voter.ID)
	}
	return ids
}
