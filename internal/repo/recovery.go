package repo

import (
	"VNumbers/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// RecoveryRepository - одноместный буфер последнего удалённого номера.
type RecoveryRepository interface {
	// Store полностью очищает буфер и кладёт туда копию номера и его сообщений.
	Store(ctx context.Context, deletionID string, vn *model.VirtualNumber, msgs []model.Message, deletedAt time.Time) (*model.RecoverableVirtualNumber, error)
	// Peek возвращает содержимое буфера вместе с сообщениями или nil, если он пуст.
	Peek(ctx context.Context) (*model.RecoverableVirtualNumber, error)
	// ConsumeAndClear возвращает содержимое буфера и опустошает его.
	ConsumeAndClear(ctx context.Context) (*model.RecoverableVirtualNumber, error)
}

type recoveryRepo struct {
	db *gorm.DB
}

// NewRecoveryRepository создаёт репозиторий буфера восстановления.
func NewRecoveryRepository(db *gorm.DB) RecoveryRepository {
	return &recoveryRepo{db: db}
}

func (r *recoveryRepo) Store(ctx context.Context, deletionID string, vn *model.VirtualNumber, msgs []model.Message, deletedAt time.Time) (*model.RecoverableVirtualNumber, error) {
	db := r.db.WithContext(ctx)
	if err := clearBuffer(db); err != nil {
		return nil, err
	}

	shadow := &model.RecoverableVirtualNumber{
		DeletionID:       deletionID,
		Number:           vn.Number,
		Category:         vn.Category,
		PhysicalNumberID: vn.PhysicalNumberID,
		IsActive:         vn.IsActive,
		IsMessageActive:  vn.IsMessageActive,
		IsCallActive:     vn.IsCallActive,
		DeletedAt:        deletedAt,
	}
	if err := db.Omit("Messages").Create(shadow).Error; err != nil {
		return nil, err
	}

	if len(msgs) > 0 {
		copies := make([]model.RecoverableMessage, 0, len(msgs))
		for _, m := range msgs {
			copies = append(copies, model.RecoverableMessage{
				RecoverableVirtualNumberID: shadow.ID,
				Category:                   m.Category,
				Sender:                     m.Sender,
				Body:                       m.Body,
				IsRead:                     m.IsRead,
				ReceivedAt:                 m.ReceivedAt,
				CreatedAt:                  m.CreatedAt,
			})
		}
		if err := db.Create(&copies).Error; err != nil {
			return nil, err
		}
		shadow.Messages = copies
	}
	return shadow, nil
}

func (r *recoveryRepo) Peek(ctx context.Context) (*model.RecoverableVirtualNumber, error) {
	var shadow model.RecoverableVirtualNumber
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Order("deleted_at DESC, id DESC").
		First(&shadow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shadow, nil
}

func (r *recoveryRepo) ConsumeAndClear(ctx context.Context) (*model.RecoverableVirtualNumber, error) {
	shadow, err := r.Peek(ctx)
	if err != nil {
		return nil, err
	}
	if err := clearBuffer(r.db.WithContext(ctx)); err != nil {
		return nil, err
	}
	return shadow, nil
}

// clearBuffer удаляет всё содержимое буфера. Сообщения удаляются явно,
// не полагаясь на каскад в БД.
func clearBuffer(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&model.RecoverableMessage{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&model.RecoverableVirtualNumber{}).Error
}
