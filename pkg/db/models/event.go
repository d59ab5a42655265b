package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Event is a scheduled part of a wedding (ceremony, reception, ...).
type Event struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID  uuid.UUID       `gorm:"column:client_id;type:uuid;not null;index"`
	Title     string          `gorm:"column:title;not null"`
	Type      enums.EventType `gorm:"column:type;type:event_type;not null"`
	StartsAt  *time.Time      `gorm:"column:starts_at"`
	Location  *string         `gorm:"column:location"`
	IsPrimary bool            `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
