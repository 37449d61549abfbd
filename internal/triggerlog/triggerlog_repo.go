package triggerlog

import (
	"context"

	"gorm.io/gorm"
)

type ListFilter struct {
	UserID  string
	Source  string
	Outcome string
}

type Repository interface {
	Create(ctx context.Context, l *TriggerLog) error
	FindPage(ctx context.Context, filter ListFilter, page, pageSize int) ([]TriggerLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *TriggerLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindPage(ctx context.Context, filter ListFilter, page, pageSize int) ([]TriggerLog, int64, error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&TriggerLog{}).Scopes(Scope(filter))
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TriggerLog
	err := query().Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}
