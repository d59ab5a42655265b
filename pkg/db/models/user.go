package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// User is the durable row behind an external identity.
type User struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ExternalID  string     `gorm:"column:external_id;not null;uniqueIndex"`
	CompanyID   *uuid.UUID `gorm:"column:company_id;type:uuid;index"`
	Email       string     `gorm:"column:email;not null"`
	FirstName   string     `gorm:"column:first_name;not null;default:''"`
	LastName    string     `gorm:"column:last_name;not null;default:''"`
	Role        enums.Role `gorm:"column:role;type:user_role;not null"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
