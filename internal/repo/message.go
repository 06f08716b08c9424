package repo

import (
	"VNumbers/internal/model"
	"context"

	"gorm.io/gorm"
)

// MessageRepository - доступ к сообщениям активных номеров.
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	ListByVirtualNumber(ctx context.Context, virtualID int64) ([]model.Message, error)
	// ListByCategory - сообщения всех номеров категории, свежие первыми.
	ListByCategory(ctx context.Context, category model.Category) ([]model.Message, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByVirtualNumber(ctx context.Context, virtualID int64) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepository создаёт репозиторий сообщений.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) ListByVirtualNumber(ctx context.Context, virtualID int64) ([]model.Message, error) {
	var out []model.Message
	err := r.db.WithContext(ctx).
		Where("virtual_number_id = ?", virtualID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *messageRepo) ListByCategory(ctx context.Context, category model.Category) ([]model.Message, error) {
	ids := r.db.Model(&model.VirtualNumber{}).Select("id").Where("category = ?", category)
	var out []model.Message
	err := r.db.WithContext(ctx).
		Where("virtual_number_id IN (?)", ids).
		Order("received_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *messageRepo) MarkRead(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&model.Message{}).Where("id = ?", id).Update("is_read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Message{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *messageRepo) DeleteByVirtualNumber(ctx context.Context, virtualID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("virtual_number_id = ?", virtualID).Delete(&model.Message{})
	return tx.RowsAffected, tx.Error
}

func (r *messageRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}
