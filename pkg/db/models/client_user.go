package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientUser grants a client_user login access to one client.
type ClientUser struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID  uuid.UUID `gorm:"column:client_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
