package models

import (
	"time"

	"github.com/google/uuid"
)

// PipelineStage is an ordered, tenant-defined position in the sales pipeline.
type PipelineStage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Position  int       `gorm:"column:position;not null"`
	Color     *string   `gorm:"column:color"`
	IsWon     bool      `gorm:"column:is_won;not null;default:false"`
	IsLost    bool      `gorm:"column:is_lost;not null;default:false"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
