package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientActivity is the audit trail of a client.
type ClientActivity struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID    uuid.UUID      `gorm:"column:client_id;type:uuid;not null;index"`
	ActorUserID *uuid.UUID     `gorm:"column:actor_user_id;type:uuid"`
	Action      string         `gorm:"column:action;not null"`
	Metadata    map[string]any `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}
