package repo

import (
	"VNumbers/internal/model"
	"context"

	"gorm.io/gorm"
)

// PhysicalNumberRepository - доступ к физическим номерам.
type PhysicalNumberRepository interface {
	Create(ctx context.Context, pn *model.PhysicalNumber) error
	GetByID(ctx context.Context, id int64) (*model.PhysicalNumber, error)
	ListActive(ctx context.Context) ([]model.PhysicalNumber, error)
	// FindWithCapacity возвращает первый активный номер, у которого меньше
	// MaxVirtualPerPhysical виртуальных и нет номера в указанной категории.
	FindWithCapacity(ctx context.Context, category model.Category) (*model.PhysicalNumber, error)
}

type physicalRepo struct {
	db *gorm.DB
}

// NewPhysicalNumberRepository создаёт репозиторий физических номеров.
func NewPhysicalNumberRepository(db *gorm.DB) PhysicalNumberRepository {
	return &physicalRepo{db: db}
}

func (r *physicalRepo) Create(ctx context.Context, pn *model.PhysicalNumber) error {
	return r.db.WithContext(ctx).Create(pn).Error
}

func (r *physicalRepo) GetByID(ctx context.Context, id int64) (*model.PhysicalNumber, error) {
	var pn model.PhysicalNumber
	if err := r.db.WithContext(ctx).First(&pn, id).Error; err != nil {
		return nil, err
	}
	return &pn, nil
}

func (r *physicalRepo) ListActive(ctx context.Context) ([]model.PhysicalNumber, error) {
	var out []model.PhysicalNumber
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *physicalRepo) FindWithCapacity(ctx context.Context, category model.Category) (*model.PhysicalNumber, error) {
	used := r.db.Model(&model.VirtualNumber{}).
		Select("physical_number_id").
		Group("physical_number_id").
		Having("COUNT(*) >= ?", model.MaxVirtualPerPhysical)
	taken := r.db.Model(&model.VirtualNumber{}).
		Select("physical_number_id").
		Where("category = ?", category)

	var pn model.PhysicalNumber
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("id NOT IN (?)", used).
		Where("id NOT IN (?)", taken).
		Order("id ASC").
		First(&pn).Error
	if err != nil {
		return nil, err
	}
	return &pn, nil
}
