package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client is one wedding engagement and the root of the planning graph.
type Client struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID         uuid.UUID           `gorm:"column:company_id;type:uuid;not null;index"`
	Partner1FirstName string              `gorm:"column:partner1_first_name;not null"`
	Partner1LastName  string              `gorm:"column:partner1_last_name;not null;default:''"`
	Partner1Email     *string             `gorm:"column:partner1_email"`
	Partner1Phone     *string             `gorm:"column:partner1_phone"`
	Partner2FirstName *string             `gorm:"column:partner2_first_name"`
	Partner2LastName  *string             `gorm:"column:partner2_last_name"`
	Partner2Email     *string             `gorm:"column:partner2_email"`
	WeddingDate       *time.Time          `gorm:"column:wedding_date;type:date"`
	Venue             *string             `gorm:"column:venue"`
	WeddingType       string              `gorm:"column:wedding_type;not null;default:'traditional'"`
	Budget            decimal.NullDecimal `gorm:"column:budget;type:numeric(12,2)"`
	GuestCount        *int                `gorm:"column:guest_count"`
	Status            string              `gorm:"column:status;not null;default:'planning'"`
	Source            string              `gorm:"column:source;not null;default:'direct'"`
	Notes             *string             `gorm:"column:notes"`
	CreatedBy         uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`

	StatsGuestCount      int             `gorm:"column:stats_guest_count;not null;default:0"`
	StatsConfirmedGuests int             `gorm:"column:stats_confirmed_guests;not null;default:0"`
	StatsVendorCount     int             `gorm:"column:stats_vendor_count;not null;default:0"`
	StatsBudgetEstimated decimal.Decimal `gorm:"column:stats_budget_estimated;type:numeric(12,2);not null;default:0"`
	StatsBudgetPaid      decimal.Decimal `gorm:"column:stats_budget_paid;type:numeric(12,2);not null;default:0"`
	StatsUpdatedAt       *time.Time      `gorm:"column:stats_updated_at"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
