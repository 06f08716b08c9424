package model

import "time"

// RecoverableVirtualNumber - теневая копия последнего удалённого номера.
// В таблице не больше одной строки.
type RecoverableVirtualNumber struct {
	ID         int64    `gorm:"primaryKey"`
	DeletionID string   `gorm:"type:varchar(36);not null"`
	Number     string   `gorm:"type:varchar(20);not null"`
	Category   Category `gorm:"type:varchar(20);not null"`

	PhysicalNumberID int64 `gorm:"not null"`

	IsActive        bool `gorm:"not null"`
	IsMessageActive bool `gorm:"not null"`
	IsCallActive    bool `gorm:"not null"`

	Messages []RecoverableMessage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	DeletedAt time.Time `gorm:"not null"`
}

// RecoverableMessage - копия сообщения удалённого номера с исходными метками времени.
type RecoverableMessage struct {
	ID                         int64    `gorm:"primaryKey"`
	RecoverableVirtualNumberID int64    `gorm:"not null;index"`
	Category                   Category `gorm:"type:varchar(20);not null"`
	Sender                     string   `gorm:"type:varchar(100);not null"`
	Body                       string   `gorm:"column:message_body;type:text;not null"`
	IsRead                     bool     `gorm:"not null"`
	ReceivedAt                 *time.Time
	CreatedAt                  time.Time `gorm:"not null"`
}

// CategoryCooldown - таймеры удаления/восстановления для категории.
type CategoryCooldown struct {
	ID              int64    `gorm:"primaryKey"`
	Category        Category `gorm:"type:varchar(20);not null;uniqueIndex"`
	LastDeletedAt   *time.Time
	LastRecoveredAt *time.Time
}
