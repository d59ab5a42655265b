package clients

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/weddingplanner-backend/internal/budget"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
)

const (
	defaultStatus = "planning"
	defaultSource = "direct"
)

// CreateClientInput is the already shape-checked request to create a client.
type CreateClientInput struct {
	Partner1FirstName string           `json:"partner1FirstName" validate:"required,notblank,max=100"`
	Partner1LastName  string           `json:"partner1LastName" validate:"max=100"`
	Partner1Email     *string          `json:"partner1Email" validate:"omitempty,email"`
	Partner1Phone     *string          `json:"partner1Phone" validate:"omitempty,max=40"`
	Partner2FirstName *string          `json:"partner2FirstName" validate:"omitempty,max=100"`
	Partner2LastName  *string          `json:"partner2LastName" validate:"omitempty,max=100"`
	Partner2Email     *string          `json:"partner2Email" validate:"omitempty,email"`
	WeddingDate       *time.Time       `json:"weddingDate"`
	Venue             *string          `json:"venue" validate:"omitempty,max=200"`
	WeddingType       string           `json:"weddingType" validate:"omitempty,max=50"`
	Budget            *decimal.Decimal `json:"budget"`
	GuestCount        *int             `json:"guestCount" validate:"omitempty,min=0"`
	Source            string           `json:"source" validate:"omitempty,max=50"`
	Notes             *string          `json:"notes"`
	// EventTitle overrides the derived ceremony title.
	EventTitle *string `json:"eventTitle" validate:"omitempty,max=200"`
	// Vendors is a free-text list: "Category: Name, Name, ...".
	Vendors string `json:"vendors"`
}

// WeddingTypeOrDefault returns the normalized wedding type, traditional when blank.
func (in CreateClientInput) WeddingTypeOrDefault() string {
	if wt := strings.ToLower(strings.TrimSpace(in.WeddingType)); wt != "" {
		return wt
	}
	return budget.WeddingTypeTraditional
}

// HasBudget reports whether a positive budget total was supplied.
func (in CreateClientInput) HasBudget() bool {
	return in.Budget != nil && in.Budget.IsPositive()
}

// ToModel maps the input onto a client row owned by companyID.
func (in CreateClientInput) ToModel(companyID, creatorUserID uuid.UUID) *models.Client {
	client := &models.Client{
		CompanyID:         companyID,
		Partner1FirstName: strings.TrimSpace(in.Partner1FirstName),
		Partner1LastName:  strings.TrimSpace(in.Partner1LastName),
		Partner1Email:     trimmed(in.Partner1Email),
		Partner1Phone:     trimmed(in.Partner1Phone),
		Partner2FirstName: trimmed(in.Partner2FirstName),
		Partner2LastName:  trimmed(in.Partner2LastName),
		Partner2Email:     trimmed(in.Partner2Email),
		WeddingDate:       in.WeddingDate,
		Venue:             trimmed(in.Venue),
		WeddingType:       in.WeddingTypeOrDefault(),
		GuestCount:        in.GuestCount,
		Status:            defaultStatus,
		Source:            defaultSource,
		Notes:             in.Notes,
		CreatedBy:         creatorUserID,
	}
	if src := strings.TrimSpace(in.Source); src != "" {
		client.Source = src
	}
	if in.Budget != nil {
		client.Budget = decimal.NullDecimal{Decimal: in.Budget.Round(2), Valid: true}
	}
	return client
}

// EventTitleFor returns the supplied title, or "<p1> & <p2>'s Wedding" /
// "<p1>'s Wedding".
func EventTitleFor(in CreateClientInput) string {
	if t := trimmed(in.EventTitle); t != nil {
		return *t
	}
	p1 := strings.TrimSpace(in.Partner1FirstName)
	if p2 := trimmed(in.Partner2FirstName); p2 != nil {
		return p1 + " & " + *p2 + "'s Wedding"
	}
	return p1 + "'s Wedding"
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
