package models

import (
	"time"

	"github.com/google/uuid"
)

// Document references a generated or uploaded file; the bytes live elsewhere.
type Document struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID    uuid.UUID `gorm:"column:client_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	StorageKey  string    `gorm:"column:storage_key;not null"`
	ContentType string    `gorm:"column:content_type;not null;default:'application/pdf'"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
