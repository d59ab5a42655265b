package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Guest is an invitee of a client's wedding.
type Guest struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID        `gorm:"column:company_id;type:uuid;not null;index"`
	ClientID   uuid.UUID        `gorm:"column:client_id;type:uuid;not null;index"`
	FirstName  string           `gorm:"column:first_name;not null"`
	LastName   string           `gorm:"column:last_name;not null;default:''"`
	Email      *string          `gorm:"column:email"`
	RSVPStatus enums.RSVPStatus `gorm:"column:rsvp_status;type:rsvp_status;not null;default:'pending'"`
	PartySize  int              `gorm:"column:party_size;not null;default:1"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// GuestHotel records where a guest is staying.
type GuestHotel struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	GuestID    uuid.UUID  `gorm:"column:guest_id;type:uuid;not null;index"`
	HotelName  string     `gorm:"column:hotel_name;not null"`
	CheckInAt  *time.Time `gorm:"column:check_in_at"`
	CheckOutAt *time.Time `gorm:"column:check_out_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// GuestTransport records a guest's shuttle or pickup.
type GuestTransport struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	GuestID   uuid.UUID  `gorm:"column:guest_id;type:uuid;not null;index"`
	Mode      string     `gorm:"column:mode;not null"`
	PickupAt  *time.Time `gorm:"column:pickup_at"`
	Notes     *string    `gorm:"column:notes"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// GuestGift tracks a gift received from a guest.
type GuestGift struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	GuestID      uuid.UUID `gorm:"column:guest_id;type:uuid;not null;index"`
	Description  string    `gorm:"column:description;not null"`
	ThankYouSent bool      `gorm:"column:thank_you_sent;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
