package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"campusvote/contexts/identity-access/auth-gate/domain/entities"
	domainerrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	"campusvote/contexts/identity-access/auth-gate/ports"

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

// AutoMigrate creates the admins table. The unique index on email is the
// duplicate-account arbiter.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&adminModel{})
}

func (r *Repository) Insert(ctx context.Context, admin entities.Admin) error {
	row := adminModelFromEntity(admin)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateAdmin
		}
		return r.logError("auth_repo_insert_failed", err, "admin_id", admin.ID)
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (entities.Admin, error) {
	var row adminModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Admin{}, domainerrors.ErrAdminNotFound
		}
		return entities.Admin{}, r.logError("auth_repo_get_by_email_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) Get(ctx context.Context, adminID string) (entities.Admin, error) {
	var row adminModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(adminID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Admin{}, domainerrors.ErrAdminNotFound
		}
		return entities.Admin{}, r.logError("auth_repo_get_failed", err, "admin_id", adminID)
	}
	return row.toEntity(), nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/auth-gate",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("auth gate repository failure", fields...)
	return err
}

type adminModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (adminModel) TableName() string {
	return "admins"
}

func adminModelFromEntity(admin entities.Admin) adminModel {
	return adminModel{
		ID:           admin.ID,
		Email:        admin.Email,
		Name:         admin.Name,
		PasswordHash: admin.PasswordHash,
		CreatedAt:    admin.CreatedAt.UTC(),
	}
}

func (m adminModel) toEntity() entities.Admin {
	return entities.Admin{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AdminRepository = (*Repository)(nil)
