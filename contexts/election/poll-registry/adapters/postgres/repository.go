package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"campusvote/contexts/election/poll-registry/domain/entities"
	domainerrors "campusvote/contexts/election/poll-registry/domain/errors"
	"campusvote/contexts/election/poll-registry/ports"

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

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&pollModel{})
}

func (r *Repository) Insert(ctx context.Context, poll entities.Poll) error {
	row, err := pollModelFromEntity(poll)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("poll_repo_insert_failed", err, "poll_id", poll.ID)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, poll entities.Poll) error {
	row, err := pollModelFromEntity(poll)
	if err != nil {
		return err
	}
	tx := r.db.WithContext(ctx).Model(&pollModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"title":             row.Title,
			"description":       row.Description,
			"target_year":       row.TargetYear,
			"target_section":    row.TargetSection,
			"target_department": row.TargetDepartment,
			"candidates":        row.Candidates,
		})
	if tx.Error != nil {
		return r.logError("poll_repo_update_failed", tx.Error, "poll_id", row.ID)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, pollID string) (entities.Poll, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pollID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("poll_repo_get_failed", err, "poll_id", strings.TrimSpace(pollID))
	}
	return row.toEntity()
}

func (r *Repository) List(ctx context.Context) ([]entities.Poll, error) {
	var rows []pollModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("poll_repo_list_failed", err)
	}
	out := make([]entities.Poll, 0, len(rows))
	for _, row := range rows {
		poll, err := row.toEntity()
		if err != nil {
			return nil, r.logError("poll_repo_decode_failed", err, "poll_id", row.ID)
		}
		out = append(out, poll)
	}
	return out, nil
}

func (r *Repository) SetActive(ctx context.Context, pollID string, active bool) error {
	tx := r.db.WithContext(ctx).Model(&pollModel{}).
		Where("id = ?", strings.TrimSpace(pollID)).
		Update("is_active", active)
	if tx.Error != nil {
		return r.logError("poll_repo_set_active_failed", tx.Error, "poll_id", pollID)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, pollID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pollID)).
		Delete(&pollModel{})
	if tx.Error != nil {
		return false, r.logError("poll_repo_delete_failed", tx.Error, "poll_id", pollID)
	}
	return tx.RowsAffected > 0, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election/poll-registry",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll registry repository failure", fields...)
	return err
}

type pollModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	Title               string    `gorm:"column:title"`
	Description         string    `gorm:"column:description"`
	TargetYear          string    `gorm:"column:target_year;index"`
	TargetSection       string    `gorm:"column:target_section"`
	TargetDepartment    string    `gorm:"column:target_department"`
	Candidates          string    `gorm:"column:candidates;type:text"`
	IsActive            bool      `gorm:"column:is_active;index"`
	EligibleVotersCount int       `gorm:"column:eligible_voters_count"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	CreatedBy           string    `gorm:"column:created_by"`
}

func (pollModel) TableName() string {
	return "polls"
}

func pollModelFromEntity(poll entities.Poll) (pollModel, error) {
	candidates, err := json.Marshal(poll.Candidates)
	if err != nil {
		return pollModel{}, err
	}
	return pollModel{
		ID:                  poll.ID,
		Title:               poll.Title,
		Description:         poll.Description,
		TargetYear:          poll.TargetYear,
		TargetSection:       poll.TargetSection,
		TargetDepartment:    poll.TargetDepartment,
		Candidates:          string(candidates),
		IsActive:            poll.IsActive,
		EligibleVotersCount: poll.EligibleVotersCount,
		CreatedAt:           poll.CreatedAt.UTC(),
		CreatedBy:           poll.CreatedBy,
	}, nil
}

func (m pollModel) toEntity() (entities.Poll, error) {
	var candidates []string
	if m.Candidates != "" {
		if err := json.Unmarshal([]byte(m.Candidates), &candidates); err != nil {
			return entities.Poll{}, err
		}
	}
	return entities.Poll{
		ID:                  m.ID,
		Title:               m.Title,
		Description:         m.Description,
		TargetYear:          m.TargetYear,
		TargetSection:       m.TargetSection,
		TargetDepartment:    m.TargetDepartment,
		Candidates:          candidates,
		IsActive:            m.IsActive,
		EligibleVotersCount: m.EligibleVotersCount,
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
	}, nil
}

var _ ports.PollRepository = (*Repository)(nil)
