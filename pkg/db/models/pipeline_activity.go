package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// PipelineActivity is an immutable, append-only record of what happened to a lead.
type PipelineActivity struct {
	ID          uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID                  `gorm:"column:company_id;type:uuid;not null;index"`
	LeadID      uuid.UUID                  `gorm:"column:lead_id;type:uuid;not null;index"`
	ActorUserID *uuid.UUID                 `gorm:"column:actor_user_id;type:uuid"`
	Type        enums.PipelineActivityType `gorm:"column:type;type:pipeline_activity_type;not null"`
	Description string                     `gorm:"column:description;not null;default:''"`
	Metadata    map[string]any             `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt   time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
