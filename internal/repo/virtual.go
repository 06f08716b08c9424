package repo

import (
	"VNumbers/internal/model"
	"context"

	"gorm.io/gorm"
)

// VirtualNumberRepository - доступ к активным виртуальным номерам.
type VirtualNumberRepository interface {
	Create(ctx context.Context, vn *model.VirtualNumber) error
	GetByID(ctx context.Context, id int64) (*model.VirtualNumber, error)
	GetByNumber(ctx context.Context, number string) (*model.VirtualNumber, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// List возвращает номера; пустая категория - все.
	List(ctx context.Context, category model.Category) ([]model.VirtualNumber, error)
	ListActiveByPhysical(ctx context.Context, physicalID int64) ([]model.VirtualNumber, error)
	CountByPhysical(ctx context.Context, physicalID int64) (int64, error)
	ExistsForPhysicalCategory(ctx context.Context, physicalID int64, category model.Category) (bool, error)
	// UpdateFlag записывает значение одного из булевых флагов.
	UpdateFlag(ctx context.Context, id int64, column string, value bool) error
	Delete(ctx context.Context, id int64) error
}

// Колонки переключаемых флагов.
const (
	FlagActive        = "is_active"
	FlagMessageActive = "is_message_active"
	FlagCallActive    = "is_call_active"
)

type virtualRepo struct {
	db *gorm.DB
}

// NewVirtualNumberRepository создаёт репозиторий виртуальных номеров.
func NewVirtualNumberRepository(db *gorm.DB) VirtualNumberRepository {
	return &virtualRepo{db: db}
}

func (r *virtualRepo) Create(ctx context.Context, vn *model.VirtualNumber) error {
	return r.db.WithContext(ctx).Create(vn).Error
}

func (r *virtualRepo) GetByID(ctx context.Context, id int64) (*model.VirtualNumber, error) {
	var vn model.VirtualNumber
	if err := r.db.WithContext(ctx).First(&vn, id).Error; err != nil {
		return nil, err
	}
	return &vn, nil
}

func (r *virtualRepo) GetByNumber(ctx context.Context, number string) (*model.VirtualNumber, error) {
	var vn model.VirtualNumber
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&vn).Error; err != nil {
		return nil, err
	}
	return &vn, nil
}

func (r *virtualRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VirtualNumber{}).Where("number = ?", number).Count(&n).Error
	return n > 0, err
}

func (r *virtualRepo) List(ctx context.Context, category model.Category) ([]model.VirtualNumber, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []model.VirtualNumber
	err := q.Find(&out).Error
	return out, err
}

func (r *virtualRepo) ListActiveByPhysical(ctx context.Context, physicalID int64) ([]model.VirtualNumber, error) {
	var out []model.VirtualNumber
	err := r.db.WithContext(ctx).
		Where("physical_number_id = ? AND is_active = ?", physicalID, true).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *virtualRepo) CountByPhysical(ctx context.Context, physicalID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VirtualNumber{}).
		Where("physical_number_id = ?", physicalID).
		Count(&n).Error
	return n, err
}

func (r *virtualRepo) ExistsForPhysicalCategory(ctx context.Context, physicalID int64, category model.Category) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VirtualNumber{}).
		Where("physical_number_id = ? AND category = ?", physicalID, category).
		Count(&n).Error
	return n > 0, err
}

func (r *virtualRepo) UpdateFlag(ctx context.Context, id int64, column string, value bool) error {
	tx := r.db.WithContext(ctx).Model(&model.VirtualNumber{}).
		Where("id = ?", id).
		Update(column, value)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *virtualRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.VirtualNumber{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
