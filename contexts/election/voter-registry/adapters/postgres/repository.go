package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"campusvote/contexts/election/voter-registry/domain/entities"
	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
	"campusvote/contexts/election/voter-registry/ports"

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

// AutoMigrate creates the voters table with its unique indexes. Uniqueness
// of regNo and email is enforced here, not in application code.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&voterModel{})
}

func (r *Repository) Insert(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVoter
		}
		return r.logError("registry_repo_insert_failed", err, "reg_no", voter.RegNo)
	}
	return nil
}

func (r *Repository) InsertBatch(ctx context.Context, voters []entities.Voter) error {
	rows := make([]voterModel, 0, len(voters))
	for _, voter := range voters {
		rows = append(rows, voterModelFromEntity(voter))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVoter
		}
		return r.logError("registry_repo_insert_batch_failed", err, "count", len(rows))
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	tx := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":       row.Name,
			"email":      row.Email,
			"year":       row.Year,
			"section":    row.Section,
			"department": row.Department,
			"password":   row.Password,
			"has_voted":  row.HasVoted,
		})
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return domainerrors.ErrDuplicateVoter
		}
		return r.logError("registry_repo_update_failed", tx.Error, "voter_id", row.ID)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, voterID string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByRegNo(ctx context.Context, regNo string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("reg_no = ?", strings.ToUpper(strings.TrimSpace(regNo))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_by_reg_no_failed", err, "reg_no", regNo)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByIDs(ctx context.Context, voterIDs []string) ([]entities.Voter, error) {
	var rows []voterModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", voterIDs).
		Order("year ASC, section ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_get_by_ids_failed", err, "count", len(voterIDs))
	}
	return toVoterEntities(rows), nil
}

func (r *Repository) List(ctx context.Context, filter ports.VoterFilter) ([]entities.Voter, error) {
	var rows []voterModel
	if err := r.filtered(ctx, filter).
		Order("year ASC, section ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_failed", err)
	}
	return toVoterEntities(rows), nil
}

func (r *Repository) Count(ctx context.Context, filter ports.VoterFilter) (int, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, r.logError("registry_repo_count_failed", err)
	}
	return int(count), nil
}

func (r *Repository) CountCollisions(ctx context.Context, regNos []string, emails []string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("reg_no IN ? OR email IN ?", regNos, emails).
		Count(&count).Error
	if err != nil {
		return 0, r.logError("registry_repo_count_collisions_failed", err)
	}
	return int(count), nil
}

func (r *Repository) SetHasVoted(ctx context.Context, voterIDs []string, hasVoted bool) error {
	err := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("id IN ?", voterIDs).
		Update("has_voted", hasVoted).Error
	if err != nil {
		return r.logError("registry_repo_set_has_voted_failed", err, "count", len(voterIDs))
	}
	return nil
}

func (r *Repository) SetPasswords(ctx context.Context, passwords map[string]string) error {
	for voterID, password := range passwords {
		err := r.db.WithContext(ctx).Model(&voterModel{}).
			Where("id = ?", voterID).
			Update("password", password).Error
		if err != nil {
			return r.logError("registry_repo_set_password_failed", err, "voter_id", voterID)
		}
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, voterIDs []string) (int, error) {
	tx := r.db.WithContext(ctx).
		Where("id IN ?", voterIDs).
		Delete(&voterModel{})
	if tx.Error != nil {
		return 0, r.logError("registry_repo_delete_failed", tx.Error, "count", len(voterIDs))
	}
	return int(tx.RowsAffected), nil
}

func (r *Repository) filtered(ctx context.Context, filter ports.VoterFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&voterModel{})
	if filter.Year != "" {
		tx = tx.Where("year = ?", strings.TrimSpace(filter.Year))
	}
	if filter.Section != "" {
		tx = tx.Where("section = ?", strings.ToUpper(strings.TrimSpace(filter.Section)))
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", strings.ToUpper(strings.TrimSpace(filter.Department)))
	}
	if filter.RegNo != "" {
		tx = tx.Where("reg_no = ?", strings.ToUpper(strings.TrimSpace(filter.RegNo)))
	}
	if filter.Email != "" {
		tx = tx.Where("email = ?", strings.ToLower(strings.TrimSpace(filter.Email)))
	}
	return tx
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election/voter-registry",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voter registry repository failure", fields...)
	return err
}

type voterModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	RegNo       string    `gorm:"column:reg_no;uniqueIndex"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	Year        string    `gorm:"column:year;index"`
	Section     string    `gorm:"column:section"`
	Department  string    `gorm:"column:department"`
	Password    string    `gorm:"column:password"`
	HasVoted    bool      `gorm:"column:has_voted"`
	SourceSheet string    `gorm:"column:source_sheet"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (voterModel) TableName() string {
	return "voters"
}

func voterModelFromEntity(voter entities.Voter) voterModel {
	return voterModel{
		ID:          voter.ID,
		RegNo:       voter.RegNo,
		Name:        voter.Name,
		Email:       voter.Email,
		Year:        voter.Year,
		Section:     voter.Section,
		Department:  voter.Department,
		Password:    voter.Password,
		HasVoted:    voter.HasVoted,
		SourceSheet: voter.SourceSheet,
		CreatedAt:   voter.CreatedAt.UTC(),
	}
}

func (m voterModel) toEntity() entities.Voter {
	return entities.Voter{
		ID:          m.ID,
		RegNo:       m.RegNo,
		Name:        m.Name,
		Email:       m.Email,
		Year:        m.Year,
		Section:     m.Section,
		Department:  m.Department,
		Password:    m.Password,
		HasVoted:    m.HasVoted,
		SourceSheet: m.SourceSheet,
		CreatedAt:   m.CreatedAt,
	}
}

func toVoterEntities(rows []voterModel) []entities.Voter {
	out := make([]entities.Voter, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoterRepository = (*Repository)(nil)

var _ ports.VoterRepository = (*Repository)(nil)
