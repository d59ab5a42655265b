package models

import (
	"time"

	"github.com/google/uuid"
)

// Gift is a gift received by the couple outside of the guest list.
type Gift struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID    uuid.UUID  `gorm:"column:client_id;type:uuid;not null;index"`
	FromName    string     `gorm:"column:from_name;not null"`
	Description string     `gorm:"column:description;not null"`
	ReceivedAt  *time.Time `gorm:"column:received_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// GiftRegistryItem is an entry of the couple's registry.
type GiftRegistryItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID  uuid.UUID `gorm:"column:client_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	URL       *string   `gorm:"column:url"`
	Claimed   bool      `gorm:"column:claimed;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
