package repository

import (
	"context"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"

	"gorm.io/gorm"
)

// MailLogRepository is append-only: one row per send attempt, success or not.
type MailLogRepository interface {
	Create(ctx context.Context, m *model.MailLog) error
	List(ctx context.Context) ([]model.MailLog, error)
}

type mailLogRepo struct{ db *gorm.DB }

func NewMailLogRepository(db *gorm.DB) MailLogRepository { return &mailLogRepo{db: db} }

func (r *mailLogRepo) Create(ctx context.Context, m *model.MailLog) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mailLogRepo) List(ctx context.Context) ([]model.MailLog, error) {
	var logs []model.MailLog
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(500).Find(&logs).Error
	return logs, err
}
