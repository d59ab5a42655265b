package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Vendor is a tenant-scoped catalog entry.
type Vendor struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID            `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string               `gorm:"column:name;not null"`
	Category  enums.VendorCategory `gorm:"column:category;not null;default:'other'"`
	Email     *string              `gorm:"column:email"`
	Phone     *string              `gorm:"column:phone"`
	Services  pq.StringArray       `gorm:"column:services;type:text[]"`
	IsActive  bool                 `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
