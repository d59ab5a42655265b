package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Payment stores the gateway outcome of a client payment.
type Payment struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID           `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID    uuid.UUID           `gorm:"column:client_id;type:uuid;not null;index"`
	VendorID    *uuid.UUID          `gorm:"column:vendor_id;type:uuid"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Status      enums.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:'pending'"`
	ProviderRef *string             `gorm:"column:provider_ref"`
	DueAt       *time.Time          `gorm:"column:due_at"`
	PaidAt      *time.Time          `gorm:"column:paid_at"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
