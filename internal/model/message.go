package model

import "time"

// Message - входящее сообщение на виртуальный номер.
type Message struct {
	ID              int64    `gorm:"primaryKey" json:"id"`
	VirtualNumberID int64    `gorm:"not null;index" json:"virtual_number_id"`
	Category        Category `gorm:"type:varchar(20);not null" json:"category"`
	Sender          string   `gorm:"type:varchar(100);not null" json:"sender"`
	Body            string   `gorm:"column:message_body;type:text;not null" json:"message_body"`
	IsRead          bool     `gorm:"not null" json:"is_read"`

	ReceivedAt *time.Time `json:"received_at"`
	// CreatedAt заполняется автоматически только если нулевой - при восстановлении
	// сохраняем исходное значение.
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
