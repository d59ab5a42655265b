package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// ClientVendor links a vendor to a client along with payment/approval state.
type ClientVendor struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID            `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID       uuid.UUID            `gorm:"column:client_id;type:uuid;not null;uniqueIndex:ux_client_vendors_client_vendor"`
	VendorID       uuid.UUID            `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:ux_client_vendors_client_vendor"`
	PaymentStatus  enums.PaymentStatus  `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	ApprovalStatus enums.ApprovalStatus `gorm:"column:approval_status;type:approval_status;not null;default:'pending'"`
	ContractAmount decimal.Decimal      `gorm:"column:contract_amount;type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
