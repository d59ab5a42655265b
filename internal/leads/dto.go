package leads

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/weddingplanner-backend/internal/clients"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
)

const convertedClientSource = "lead"

// CreateLeadInput is the request to open a new lead.
type CreateLeadInput struct {
	FirstName        string           `json:"firstName" validate:"required,notblank,max=100"`
	LastName         string           `json:"lastName" validate:"max=100"`
	Email            *string          `json:"email" validate:"omitempty,email"`
	Phone            *string          `json:"phone" validate:"omitempty,max=40"`
	PartnerFirstName *string          `json:"partnerFirstName" validate:"omitempty,max=100"`
	PartnerLastName  *string          `json:"partnerLastName" validate:"omitempty,max=100"`
	WeddingDate      *time.Time       `json:"weddingDate"`
	Venue            *string          `json:"venue" validate:"omitempty,max=200"`
	WeddingType      *string          `json:"weddingType" validate:"omitempty,max=50"`
	EstimatedBudget  *decimal.Decimal `json:"estimatedBudget"`
	EstimatedGuests  *int             `json:"estimatedGuests" validate:"omitempty,min=0"`
	Source           *string          `json:"source" validate:"omitempty,max=50"`
	Tags             []string         `json:"tags" validate:"omitempty,dive,notblank,max=40"`
	Notes            *string          `json:"notes"`
}

// ToModel maps the input onto a lead row.
func (in CreateLeadInput) ToModel() *models.Lead {
	lead := &models.Lead{
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            in.Email,
		Phone:            in.Phone,
		PartnerFirstName: in.PartnerFirstName,
		PartnerLastName:  in.PartnerLastName,
		WeddingDate:      in.WeddingDate,
		Venue:            in.Venue,
		WeddingType:      in.WeddingType,
		EstimatedGuests:  in.EstimatedGuests,
		Source:           in.Source,
		Tags:             in.Tags,
		Notes:            in.Notes,
	}
	if in.EstimatedBudget != nil {
		lead.EstimatedBudget = decimal.NullDecimal{Decimal: in.EstimatedBudget.Round(2), Valid: true}
	}
	return lead
}

// ConvertOverrides replaces lead-derived client fields when non-nil.
type ConvertOverrides struct {
	Partner1FirstName *string          `json:"partner1FirstName" validate:"omitempty,notblank,max=100"`
	Partner1LastName  *string          `json:"partner1LastName" validate:"omitempty,max=100"`
	Partner1Email     *string          `json:"partner1Email" validate:"omitempty,email"`
	Partner1Phone     *string          `json:"partner1Phone" validate:"omitempty,max=40"`
	Partner2FirstName *string          `json:"partner2FirstName" validate:"omitempty,max=100"`
	Partner2LastName  *string          `json:"partner2LastName" validate:"omitempty,max=100"`
	Partner2Email     *string          `json:"partner2Email" validate:"omitempty,email"`
	WeddingDate       *time.Time       `json:"weddingDate"`
	Venue             *string          `json:"venue" validate:"omitempty,max=200"`
	WeddingType       *string          `json:"weddingType" validate:"omitempty,max=50"`
	Budget            *decimal.Decimal `json:"budget"`
	GuestCount        *int             `json:"guestCount" validate:"omitempty,min=0"`
	Notes             *string          `json:"notes"`
	EventTitle        *string          `json:"eventTitle" validate:"omitempty,max=200"`
	Vendors           *string          `json:"vendors"`
}

// ClientInputFor builds the client request for converting lead, with the
// lead's contact and wedding fields as defaults.
func ClientInputFor(lead *models.Lead, o ConvertOverrides) clients.CreateClientInput {
	in := clients.CreateClientInput{
		Partner1FirstName: lead.FirstName,
		Partner1LastName:  lead.LastName,
		Partner1Email:     lead.Email,
		Partner1Phone:     lead.Phone,
		Partner2FirstName: lead.PartnerFirstName,
		Partner2LastName:  lead.PartnerLastName,
		WeddingDate:       lead.WeddingDate,
		Venue:             lead.Venue,
		GuestCount:        lead.EstimatedGuests,
		Source:            convertedClientSource,
		Notes:             lead.Notes,
	}
	if lead.WeddingType != nil {
		in.WeddingType = *lead.WeddingType
	}
	if lead.EstimatedBudget.Valid {
		total := lead.EstimatedBudget.Decimal
		in.Budget = &total
	}

	if o.Partner1FirstName != nil {
		in.Partner1FirstName = *o.Partner1FirstName
	}
	if o.Partner1LastName != nil {
		in.Partner1LastName = *o.Partner1LastName
	}
	if o.Partner1Email != nil {
		in.Partner1Email = o.Partner1Email
	}
	if o.Partner1Phone != nil {
		in.Partner1Phone = o.Partner1Phone
	}
	if o.Partner2FirstName != nil {
		in.Partner2FirstName = o.Partner2FirstName
	}
	if o.Partner2LastName != nil {
		in.Partner2LastName = o.Partner2LastName
	}
	if o.Partner2Email != nil {
		in.Partner2Email = o.Partner2Email
	}
	if o.WeddingDate != nil {
		in.WeddingDate = o.WeddingDate
	}
	if o.Venue != nil {
		in.Venue = o.Venue
	}
	if o.WeddingType != nil {
		in.WeddingType = *o.WeddingType
	}
	if o.Budget != nil {
		in.Budget = o.Budget
	}
	if o.GuestCount != nil {
		in.GuestCount = o.GuestCount
	}
	if o.Notes != nil {
		in.Notes = o.Notes
	}
	if o.EventTitle != nil {
		in.EventTitle = o.EventTitle
	}
	if o.Vendors != nil {
		in.Vendors = *o.Vendors
	}
	return in
}

// CreateStageInput is the request to add a pipeline stage.
type CreateStageInput struct {
	Name     string  `json:"name" validate:"required,notblank,max=60"`
	Color    *string `json:"color" validate:"omitempty,max=20"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
	IsWon    bool    `json:"isWon"`
	IsLost   bool    `json:"isLost"`
}
