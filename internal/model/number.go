package model

import "time"

// MaxVirtualPerPhysical - сколько виртуальных номеров может обслуживать один физический.
const MaxVirtualPerPhysical = 3

// PhysicalNumber - реальная линия, за которой стоят виртуальные номера.
type PhysicalNumber struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Number    string `gorm:"type:varchar(20);not null;uniqueIndex" json:"number"`
	OwnerName string `gorm:"type:varchar(100);not null" json:"owner_name"`
	IsActive  bool   `gorm:"not null" json:"is_active"`

	VirtualNumbers []VirtualNumber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// VirtualNumber - номер категории, привязанный к физическому номеру.
// Флаги без default в БД: иначе gorm не запишет false при восстановлении.
type VirtualNumber struct {
	ID       int64    `gorm:"primaryKey" json:"id"`
	Number   string   `gorm:"type:varchar(20);not null;uniqueIndex" json:"number"`
	Category Category `gorm:"type:varchar(20);not null;uniqueIndex:idx_vn_physical_category,priority:2" json:"category"`

	PhysicalNumberID int64           `gorm:"not null;uniqueIndex:idx_vn_physical_category,priority:1" json:"physical_number_id"`
	PhysicalNumber   *PhysicalNumber `json:"-"`

	IsActive        bool `gorm:"not null" json:"is_active"`
	IsMessageActive bool `gorm:"not null" json:"is_message_active"`
	IsCallActive    bool `gorm:"not null" json:"is_call_active"`

	Messages []Message `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DeletedVirtualNumber - запись аудита об удалении. Только дописывается.
type DeletedVirtualNumber struct {
	ID         int64    `gorm:"primaryKey" json:"id"`
	DeletionID string   `gorm:"type:varchar(36);not null;index" json:"deletion_id"`
	Number     string   `gorm:"type:varchar(20);not null;index" json:"number"`
	Category   Category `gorm:"type:varchar(20);not null" json:"category"`

	PhysicalNumberID int64           `gorm:"not null;index" json:"physical_number_id"`
	PhysicalNumber   *PhysicalNumber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	DeletedAt time.Time `gorm:"not null;index" json:"deleted_at"`
}
