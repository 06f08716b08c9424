package repo

import (
	"VNumbers/internal/model"
	"context"

	"gorm.io/gorm"
)

// DeletedNumberRepository - журнал удалённых номеров (только запись и поиск).
type DeletedNumberRepository interface {
	Create(ctx context.Context, d *model.DeletedVirtualNumber) error
	// LatestByNumber возвращает последнюю запись аудита для номера.
	LatestByNumber(ctx context.Context, number string) (*model.DeletedVirtualNumber, error)
	Count(ctx context.Context) (int64, error)
}

type deletedRepo struct {
	db *gorm.DB
}

// NewDeletedNumberRepository создаёт репозиторий журнала удалений.
func NewDeletedNumberRepository(db *gorm.DB) DeletedNumberRepository {
	return &deletedRepo{db: db}
}

func (r *deletedRepo) Create(ctx context.Context, d *model.DeletedVirtualNumber) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deletedRepo) LatestByNumber(ctx context.Context, number string) (*model.DeletedVirtualNumber, error) {
	var d model.DeletedVirtualNumber
	err := r.db.WithContext(ctx).
		Where("number = ?", number).
		Order("deleted_at DESC, id DESC").
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deletedRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.DeletedVirtualNumber{}).Count(&n).Error
	return n, err
}
