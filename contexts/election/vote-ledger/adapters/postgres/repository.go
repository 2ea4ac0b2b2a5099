package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"campusvote/contexts/election/vote-ledger/domain/entities"
	domainerrors "campusvote/contexts/election/vote-ledger/domain/errors"
	"campusvote/contexts/election/vote-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// AutoMigrate creates the votes table. The composite unique index on
// (poll_id, voter_id) is the double-vote arbiter; application code never
// pre-checks it.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&voteModel{})
}

func (r *Repository) Insert(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("ledger_repo_insert_failed", err, "poll_id", vote.PollID)
	}
	return nil
}

func (r *Repository) ListByPoll(ctx context.Context, pollID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Order("cast_at ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("ledger_repo_list_by_poll_failed", err, "poll_id", pollID)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) ListByVoter(ctx context.Context, voterID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Order("cast_at ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("ledger_repo_list_by_voter_failed", err, "voter_id", voterID)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Order("cast_at ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("ledger_repo_list_all_failed", err)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) CountByPoll(ctx context.Context, pollID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Count(&count).
		Error; err != nil {
		return 0, r.logError("ledger_repo_count_by_poll_failed", err, "poll_id", pollID)
	}
	return int(count), nil
}

func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&voteModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("ledger_repo_count_all_failed", err)
	}
	return int(count), nil
}

func (r *Repository) HasVoted(ctx context.Context, pollID string, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("poll_id = ? AND voter_id = ?", strings.TrimSpace(pollID), strings.TrimSpace(voterID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("ledger_repo_has_voted_failed", err, "poll_id", pollID)
	}
	return count > 0, nil
}

func (r *Repository) CountSince(ctx context.Context, since time.Time) (map[string]int, error) {
	type bucket struct {
		Day   time.Time
		Votes int
	}
	var buckets []bucket
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Select("date_trunc('day', cast_at) AS day, COUNT(*) AS votes").
		Where("cast_at >= ?", since.UTC()).
		Group("day").
		Scan(&buckets).
		Error
	if err != nil {
		return nil, r.logError("ledger_repo_count_since_failed", err)
	}
	out := make(map[string]int, len(buckets))
	for _, b := range buckets {
		out[b.Day.UTC().Format("2006-01-02")] = b.Votes
	}
	return out, nil
}

func (r *Repository) CountPerPoll(ctx context.Context) (map[string]int, error) {
	type bucket struct {
		PollID string
		Votes  int
	}
	var buckets []bucket
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Select("poll_id, COUNT(*) AS votes").
		Group("poll_id").
		Scan(&buckets).
		Error
	if err != nil {
		return nil, r.logError("ledger_repo_count_per_poll_failed", err)
	}
	out := make(map[string]int, len(buckets))
	for _, b := range buckets {
		out[b.PollID] = b.Votes
	}
	return out, nil
}

func (r *Repository) DeleteByPoll(ctx context.Context, pollID string) (int, error) {
	tx := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Delete(&voteModel{})
	if tx.Error != nil {
		return 0, r.logError("ledger_repo_delete_by_poll_failed", tx.Error, "poll_id", pollID)
	}
	return int(tx.RowsAffected), nil
}

func (r *Repository) DeleteByVoters(ctx context.Context, voterIDs []string) (int, error) {
	if len(voterIDs) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Where("voter_id IN ?", voterIDs).
		Delete(&voteModel{})
	if tx.Error != nil {
		return 0, r.logError("ledger_repo_delete_by_voters_failed", tx.Error, "count", len(voterIDs))
	}
	return int(tx.RowsAffected), nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election/vote-ledger",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("vote ledger repository failure", fields...)
	return err
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PollID    string    `gorm:"column:poll_id;uniqueIndex:idx_votes_poll_voter;index"`
	VoterID   string    `gorm:"column:voter_id;uniqueIndex:idx_votes_poll_voter;index"`
	Candidate string    `gorm:"column:candidate"`
	CastAt    time.Time `gorm:"column:cast_at;index"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:        vote.ID,
		PollID:    vote.PollID,
		VoterID:   vote.VoterID,
		Candidate: vote.Candidate,
		CastAt:    vote.CastAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		ID:        m.ID,
		PollID:    m.PollID,
		VoterID:   m.VoterID,
		Candidate: m.Candidate,
		CastAt:    m.CastAt,
	}
}

func toVoteEntities(rows []voteModel) []entities.Vote {
	out := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteRepository = (*Repository)(nil)
