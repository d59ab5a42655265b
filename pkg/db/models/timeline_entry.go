package models

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEntry is one slot of the day-of schedule.
type TimelineEntry struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID  uuid.UUID  `gorm:"column:client_id;type:uuid;not null;index"`
	EventID   *uuid.UUID `gorm:"column:event_id;type:uuid"`
	Title     string     `gorm:"column:title;not null"`
	StartsAt  *time.Time `gorm:"column:starts_at"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
