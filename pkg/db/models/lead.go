package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Lead is a sales prospect; it converts into a Client at most once.
type Lead struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID           uuid.UUID           `gorm:"column:company_id;type:uuid;not null;index"`
	StageID             uuid.UUID           `gorm:"column:stage_id;type:uuid;not null;index"`
	Status              enums.LeadStatus    `gorm:"column:status;type:lead_status;not null;default:'new'"`
	FirstName           string              `gorm:"column:first_name;not null"`
	LastName            string              `gorm:"column:last_name;not null;default:''"`
	Email               *string             `gorm:"column:email"`
	Phone               *string             `gorm:"column:phone"`
	PartnerFirstName    *string             `gorm:"column:partner_first_name"`
	PartnerLastName     *string             `gorm:"column:partner_last_name"`
	WeddingDate         *time.Time          `gorm:"column:wedding_date;type:date"`
	Venue               *string             `gorm:"column:venue"`
	WeddingType         *string             `gorm:"column:wedding_type"`
	EstimatedBudget     decimal.NullDecimal `gorm:"column:estimated_budget;type:numeric(12,2)"`
	EstimatedGuests     *int                `gorm:"column:estimated_guests"`
	Source              *string             `gorm:"column:source"`
	Tags                pq.StringArray      `gorm:"column:tags;type:text[]"`
	Notes               *string             `gorm:"column:notes"`
	ConvertedToClientID *uuid.UUID          `gorm:"column:converted_to_client_id;type:uuid"`
	ConvertedAt         *time.Time          `gorm:"column:converted_at"`
	CreatedBy           uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt           gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}
