package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Company is the tenant isolation boundary.
type Company struct {
	ID                 uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Name               string                   `gorm:"column:name;not null"`
	Subdomain          string                   `gorm:"column:subdomain;not null;uniqueIndex"`
	SubscriptionStatus enums.SubscriptionStatus `gorm:"column:subscription_status;type:subscription_status;not null;default:'trialing'"`
	TrialEndsAt        *time.Time               `gorm:"column:trial_ends_at"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
