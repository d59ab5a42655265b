package models

import (
	"time"

	"github.com/google/uuid"
)

// FloorPlan is a seating layout for one of the client's events.
type FloorPlan struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID  uuid.UUID  `gorm:"column:client_id;type:uuid;not null;index"`
	EventID   *uuid.UUID `gorm:"column:event_id;type:uuid"`
	Name      string     `gorm:"column:name;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// FloorPlanTable is a table placed on a floor plan.
type FloorPlanTable struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	FloorPlanID uuid.UUID `gorm:"column:floor_plan_id;type:uuid;not null;index"`
	Label       string    `gorm:"column:label;not null"`
	Capacity    int       `gorm:"column:capacity;not null;default:8"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// FloorPlanGuest seats a guest at a floor plan table.
type FloorPlanGuest struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	FloorPlanID uuid.UUID `gorm:"column:floor_plan_id;type:uuid;not null;index"`
	TableID     uuid.UUID `gorm:"column:table_id;type:uuid;not null"`
	GuestID     uuid.UUID `gorm:"column:guest_id;type:uuid;not null"`
	SeatNumber  *int      `gorm:"column:seat_number"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
