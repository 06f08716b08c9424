package repo

import (
	"VNumbers/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CooldownRepository - строки таймеров по категориям.
type CooldownRepository interface {
	// Get возвращает строку категории или nil, если её ещё нет.
	Get(ctx context.Context, category model.Category) (*model.CategoryCooldown, error)
	// MarkDeletion атомарно создаёт строку или обновляет last_deleted_at.
	MarkDeletion(ctx context.Context, category model.Category, at time.Time) error
	// MarkRecovery атомарно создаёт строку или обновляет last_recovered_at.
	MarkRecovery(ctx context.Context, category model.Category, at time.Time) error
}

type cooldownRepo struct {
	db *gorm.DB
}

// NewCooldownRepository создаёт репозиторий таймеров.
func NewCooldownRepository(db *gorm.DB) CooldownRepository {
	return &cooldownRepo{db: db}
}

func (r *cooldownRepo) Get(ctx context.Context, category model.Category) (*model.CategoryCooldown, error) {
	var c model.CategoryCooldown
	err := r.db.WithContext(ctx).Where("category = ?", category).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cooldownRepo) MarkDeletion(ctx context.Context, category model.Category, at time.Time) error {
	row := &model.CategoryCooldown{Category: category, LastDeletedAt: &at}
	return r.upsert(ctx, row, "last_deleted_at", at)
}

func (r *cooldownRepo) MarkRecovery(ctx context.Context, category model.Category, at time.Time) error {
	row := &model.CategoryCooldown{Category: category, LastRecoveredAt: &at}
	return r.upsert(ctx, row, "last_recovered_at", at)
}

func (r *cooldownRepo) upsert(ctx context.Context, row *model.CategoryCooldown, column string, at time.Time) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.Assignments(map[string]any{column: at}),
	}).Create(row).Error
}
