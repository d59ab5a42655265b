package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a persisted reference to a sent email/SMS/portal message.
type Message struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID     uuid.UUID  `gorm:"column:client_id;type:uuid;not null;index"`
	SenderUserID *uuid.UUID `gorm:"column:sender_user_id;type:uuid"`
	Channel      string     `gorm:"column:channel;not null"`
	Body         string     `gorm:"column:body;not null"`
	SentAt       *time.Time `gorm:"column:sent_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
