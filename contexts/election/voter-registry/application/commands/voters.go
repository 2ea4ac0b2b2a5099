package commands

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	application "campusvote/contexts/election/voter-registry/application"
	"campusvote/contexts/election/voter-registry/domain/entities"
	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
	"campusvote/contexts/election/voter-registry/domain/services"
	"campusvote/contexts/election/voter-registry/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// VoterUseCase orchestrates voter writes: creation with uniqueness
// enforcement, all-or-nothing roster batches, updates, bulk admin actions,
// and cascading deletes.
type VoterUseCase struct {
	Voters   ports.VoterRepository
	Votes    ports.VoteCascader
	Mailer   ports.CredentialMailer
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	LoginURL string
	Logger   *slog.Logger
}

// CreateVoterCommand is the write-model input for a single voter. An empty
// Password asks the registry to generate a credential.
type CreateVoterCommand struct {
	RegNo      string
	Name       string
	Email      string
	Year       string
	Section    string
	Department string
	Password   string
}

// CreateVoter normalizes codes to canonical case, assigns a credential if
// absent, and inserts. The storage uniqueness constraints on regNo and
// email arbitrate duplicates.
func (uc VoterUseCase) CreateVoter(ctx context.Context, cmd CreateVoterCommand) (entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)
	voter := normalizeVoter(cmd)
	if voter.RegNo == "" || voter.Name == "" || voter.Email == "" {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	if !entities.IsValidYear(voter.Year) {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	if !emailPattern.MatchString(voter.Email) {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	if voter.Password == "" {
		password, err := services.GenerateCredential(services.CredentialLength)
		if err != nil {
			return entities.Voter{}, err
		}
		voter.Password = password
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Voter{}, err
	}
	voter.ID = id
	voter.CreatedAt = uc.now()

	if err := uc.Voters.Insert(ctx, voter); err != nil {
		return entities.Voter{}, err
	}
	logger.Info("voter created",
		"event", "registry_voter_created",
		"module", "election/voter-registry",
		"layer", "application",
		"voter_id", voter.ID,
		"reg_no", voter.RegNo,
		"year", voter.Year,
	)
	return voter, nil
}

// UpdateVoterCommand addresses a voter by regNo and patches the provided
// fields. Nil HasVoted leaves the flag alone. The credential is always
// regenerated on update.
type UpdateVoterCommand struct {
	RegNo      string
	Name       string
	Email      string
	Year       string
	Section    string
	Department string
	HasVoted   *bool
}

func (uc VoterUseCase) UpdateVoter(ctx context.Context, cmd UpdateVoterCommand) (entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)
	regNo := strings.ToUpper(strings.TrimSpace(cmd.RegNo))
	if regNo == "" {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	voter, err := uc.Voters.GetByRegNo(ctx, regNo)
	if err != nil {
		return entities.Voter{}, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		voter.Name = strings.ToUpper(name)
	}
	if email := strings.ToLower(strings.TrimSpace(cmd.Email)); email != "" {
		if !emailPattern.MatchString(email) {
			return entities.Voter{}, domainerrors.ErrInvalidVoterInput
		}
		voter.Email = email
	}
	if year := strings.TrimSpace(cmd.Year); year != "" {
		if !entities.IsValidYear(year) {
			return entities.Voter{}, domainerrors.ErrInvalidVoterInput
		}
		voter.Year = year
	}
	if section := strings.TrimSpace(cmd.Section); section != "" {
		voter.Section = strings.ToUpper(section)
	}
	if department := strings.TrimSpace(cmd.Department); department != "" {
		voter.Department = strings.ToUpper(department)
	}
	if cmd.HasVoted != nil {
		voter.HasVoted = *cmd.HasVoted
	}

	password, err := services.GenerateCredential(services.CredentialLength)
	if err != nil {
		return entities.Voter{}, err
	}
	voter.Password = password

	if err := uc.Voters.Update(ctx, voter); err != nil {
		return entities.Voter{}, err
	}
	logger.Info("voter updated",
		"event", "registry_voter_updated",
		"module", "election/voter-registry",
		"layer", "application",
		"voter_id", voter.ID,
		"reg_no", voter.RegNo,
	)
	return voter, nil
}

// DeleteVoter removes one voter and their vote rows, dependents first.
func (uc VoterUseCase) DeleteVoter(ctx context.Context, voterID string) error {
	logger := application.ResolveLogger(uc.Logger)
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return domainerrors.ErrInvalidVoterInput
	}
	if _, err := uc.Voters.Get(ctx, voterID); err != nil {
		return err
	}
	if _, err := uc.Votes.DeleteByVoters(ctx, []string{voterID}); err != nil {
		return err
	}
	deleted, err := uc.Voters.Delete(ctx, []string{voterID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domainerrors.ErrVoterNotFound
	}
	logger.Info("voter deleted",
		"event", "registry_voter_deleted",
		"module", "election/voter-registry",
		"layer", "application",
		"voter_id", voterID,
	)
	return nil
}

// RosterRow is one ingested roster line, already mapped from its source
// headers. RowNum and Sheet identify the origin for error messages.
type RosterRow struct {
	RowNum     int
	Sheet      string
	RegNo      string
	Name       string
	Email      string
	Year       string
	Section    string
	Department string
}

// BulkCreateResult reports a successful all-or-nothing batch insert.
type BulkCreateResult struct {
	Count           int
	SheetsProcessed int
}

// BulkCreateVoters validates every row before any write. Any invalid row
// fails the whole batch with a ValidationReport; any regNo/email collision
// against the registry or within the batch fails it with a
// DuplicateReport. Only a fully clean batch is inserted.
func (uc VoterUseCase) BulkCreateVoters(ctx context.Context, rows []RosterRow) (BulkCreateResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if len(rows) == 0 {
		return BulkCreateResult{}, domainerrors.ErrInvalidVoterInput
	}

	var messages []string
	voters := make([]entities.Voter, 0, len(rows))
	seenRegNos := make(map[string]bool, len(rows))
	seenEmails := make(map[string]bool, len(rows))
	sheets := make(map[string]bool)
	now := uc.now()

	for _, row := range rows {
		if row.Sheet != "" {
			sheets[row.Sheet] = true
		}
		voter := normalizeVoter(CreateVoterCommand{
			RegNo:      row.RegNo,
			Name:       row.Name,
			Email:      row.Email,
			Year:       row.Year,
			Section:    row.Section,
			Department: row.Department,
		})
		voter.SourceSheet = row.Sheet

		switch {
		case voter.RegNo == "":
			messages = append(messages, fmt.Sprintf("Row %d: Missing registration number", row.RowNum))
			continue
		case voter.Name == "":
			messages = append(messages, fmt.Sprintf("Row %d: Missing name", row.RowNum))
			continue
		case voter.Email == "":
			messages = append(messages, fmt.Sprintf("Row %d: Missing email", row.RowNum))
			continue
		case voter.Year == "":
			messages = append(messages, fmt.Sprintf("Row %d: Missing year", row.RowNum))
			continue
		case voter.Section == "":
			messages = append(messages, fmt.Sprintf("Row %d: Missing section", row.RowNum))
			continue
		case voter.Department == "":
			messages = append(messages, fmt.Sprintf("Row %d: Missing department", row.RowNum))
			continue
		}
		if !emailPattern.MatchString(voter.Email) {
			messages = append(messages, fmt.Sprintf("Row %d: Invalid email format", row.RowNum))
			continue
		}
		if !entities.IsValidYear(voter.Year) {
			messages = append(messages, fmt.Sprintf("Row %d: Invalid year (must be 1, 2, 3, or 4)", row.RowNum))
			continue
		}
		voters = append(voters, voter)
		seenRegNos[voter.RegNo] = true
		seenEmails[voter.Email] = true
	}

	if len(messages) > 0 {
		logger.Warn("roster batch rejected",
			"event", "registry_bulk_create_validation_failed",
			"module", "election/voter-registry",
			"layer", "application",
			"rows", len(rows),
			"errors", len(messages),
		)
		return BulkCreateResult{}, domainerrors.NewValidationReport(messages)
	}
	if len(seenRegNos) < len(voters) || len(seenEmails) < len(voters) {
		return BulkCreateResult{}, &domainerrors.DuplicateReport{Count: len(voters) - min(len(seenRegNos), len(seenEmails))}
	}

	regNos := make([]string, 0, len(voters))
	emails := make([]string, 0, len(voters))
	for _, voter := range voters {
		regNos = append(regNos, voter.RegNo)
		emails = append(emails, voter.Email)
	}
	collisions, err := uc.Voters.CountCollisions(ctx, regNos, emails)
	if err != nil {
		return BulkCreateResult{}, err
	}
	if collisions > 0 {
		return BulkCreateResult{}, &domainerrors.DuplicateReport{Count: collisions}
	}

	for i := range voters {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return BulkCreateResult{}, err
		}
		password, err := services.GenerateCredential(services.CredentialLength)
		if err != nil {
			return BulkCreateResult{}, err
		}
		voters[i].ID = id
		voters[i].Password = password
		voters[i].CreatedAt = now
	}
	if err := uc.Voters.InsertBatch(ctx, voters); err != nil {
		return BulkCreateResult{}, err
	}

	logger.Info("roster batch inserted",
		"event", "registry_bulk_create_succeeded",
		"module", "election/voter-registry",
		"layer", "application",
		"count", len(voters),
		"sheets", len(sheets),
	)
	return BulkCreateResult{Count: len(voters), SheetsProcessed: len(sheets)}, nil
}

func (uc VoterUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func normalizeVoter(cmd CreateVoterCommand) entities.Voter {
	return entities.Voter{
		RegNo:      strings.ToUpper(strings.TrimSpace(cmd.RegNo)),
		Name:       strings.ToUpper(strings.TrimSpace(cmd.Name)),
		Email:      strings.ToLower(strings.TrimSpace(cmd.Email)),
		Year:       strings.TrimSpace(cmd.Year),
		Section:    strings.ToUpper(strings.TrimSpace(cmd.Section)),
		Department: strings.ToUpper(strings.TrimSpace(cmd.Department)),
		Password:   strings.TrimSpace(cmd.Password),
	}
}
