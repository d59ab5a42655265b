package vendors

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/repo"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
)

// Repository handles vendor and vendor-link persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByName looks up a tenant vendor by case-insensitive name.
func (r *Repository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.Scoped(ctx, companyID).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at ASC").
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Create persists a vendor row.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.DB(ctx).Create(vendor).Error
}

// FindLink returns the client/vendor junction row.
func (r *Repository) FindLink(ctx context.Context, companyID, clientID, vendorID uuid.UUID) (*models.ClientVendor, error) {
	var link models.ClientVendor
	err := r.Scoped(ctx, companyID).
		Where("client_id = ? AND vendor_id = ?", clientID, vendorID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateLink persists a client/vendor junction row.
func (r *Repository) CreateLink(ctx context.Context, link *models.ClientVendor) error {
	return r.DB(ctx).Create(link).Error
}

// CreateBudgetItem persists the budget line tracking a linked vendor.
func (r *Repository) CreateBudgetItem(ctx context.Context, item *models.BudgetItem) error {
	return r.DB(ctx).Create(item).Error
}
