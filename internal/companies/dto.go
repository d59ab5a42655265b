package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// CompanyDTO is the outward shape of a tenant.
type CompanyDTO struct {
	ID                 uuid.UUID                `json:"id"`
	Name               string                   `json:"name"`
	Subdomain          string                   `json:"subdomain"`
	SubscriptionStatus enums.SubscriptionStatus `json:"subscription_status"`
	TrialEndsAt        *time.Time               `json:"trial_ends_at,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
}

// CreateCompanyDTO holds the data required to persist a company.
type CreateCompanyDTO struct {
	Name               string
	Subdomain          string
	SubscriptionStatus enums.SubscriptionStatus
	TrialEndsAt        *time.Time
}

func FromModel(c *models.Company) *CompanyDTO {
	if c == nil {
		return nil
	}
	return &CompanyDTO{
		ID:                 c.ID,
		Name:               c.Name,
		Subdomain:          c.Subdomain,
		SubscriptionStatus: c.SubscriptionStatus,
		TrialEndsAt:        c.TrialEndsAt,
		CreatedAt:          c.CreatedAt,
	}
}

func (c CreateCompanyDTO) ToModel() *models.Company {
	status := c.SubscriptionStatus
	if status == "" {
		status = enums.SubscriptionStatusTrialing
	}
	return &models.Company{
		Name:               c.Name,
		Subdomain:          c.Subdomain,
		SubscriptionStatus: status,
		TrialEndsAt:        c.TrialEndsAt,
	}
}
