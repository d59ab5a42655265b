package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetItem is a single budget line of a client.
type BudgetItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID           `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID      uuid.UUID           `gorm:"column:client_id;type:uuid;not null;index"`
	VendorID      *uuid.UUID          `gorm:"column:vendor_id;type:uuid"`
	EventID       *uuid.UUID          `gorm:"column:event_id;type:uuid"`
	Category      string              `gorm:"column:category;not null"`
	Segment       string              `gorm:"column:segment;not null;default:''"`
	Item          string              `gorm:"column:item;not null"`
	Percentage    decimal.NullDecimal `gorm:"column:percentage;type:numeric(5,2)"`
	EstimatedCost decimal.Decimal     `gorm:"column:estimated_cost;type:numeric(12,2);not null;default:0"`
	ActualCost    decimal.Decimal     `gorm:"column:actual_cost;type:numeric(12,2);not null;default:0"`
	PaidAmount    decimal.Decimal     `gorm:"column:paid_amount;type:numeric(12,2);not null;default:0"`
	Source        string              `gorm:"column:source;not null;default:'manual'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
