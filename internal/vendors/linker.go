package vendors

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

const (
	budgetSegment = "Vendors"
	budgetSource  = "vendor"
)

// Link is what Linker.Link wrote (or reused) for one entry.
type Link struct {
	Vendor        models.Vendor
	ClientVendor  models.ClientVendor
	BudgetItem    models.BudgetItem
	VendorCreated bool
}

// Linker attaches parsed vendor entries to a client.
type Linker struct{}

// NewLinker returns a Linker.
func NewLinker() *Linker {
	return &Linker{}
}

// Link find-or-creates the tenant vendor, find-or-creates its pending link to
// the client and adds a zero-cost budget line for it.
func (l *Linker) Link(ctx context.Context, tx *gorm.DB, companyID, clientID uuid.UUID, entry Entry) (*Link, error) {
	repo := NewRepository(tx)
	out := &Link{}

	vendor, err := repo.FindByName(ctx, companyID, entry.Name)
	switch {
	case err == nil:
		out.Vendor = *vendor
	case errors.Is(err, gorm.ErrRecordNotFound):
		out.Vendor = models.Vendor{
			CompanyID: companyID,
			Name:      entry.Name,
			Category:  entry.Category(),
			IsActive:  true,
		}
		if err := repo.Create(ctx, &out.Vendor); err != nil {
			return nil, err
		}
		out.VendorCreated = true
	default:
		return nil, err
	}

	link, err := repo.FindLink(ctx, companyID, clientID, out.Vendor.ID)
	switch {
	case err == nil:
		out.ClientVendor = *link
	case errors.Is(err, gorm.ErrRecordNotFound):
		out.ClientVendor = models.ClientVendor{
			CompanyID:      companyID,
			ClientID:       clientID,
			VendorID:       out.Vendor.ID,
			PaymentStatus:  enums.PaymentStatusPending,
			ApprovalStatus: enums.ApprovalStatusPending,
			ContractAmount: decimal.Zero,
		}
		if err := repo.CreateLink(ctx, &out.ClientVendor); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	vendorID := out.Vendor.ID
	out.BudgetItem = models.BudgetItem{
		CompanyID:     companyID,
		ClientID:      clientID,
		VendorID:      &vendorID,
		Category:      out.Vendor.Category.Label(),
		Segment:       budgetSegment,
		Item:          out.Vendor.Name,
		EstimatedCost: decimal.Zero,
		ActualCost:    decimal.Zero,
		PaidAmount:    decimal.Zero,
		Source:        budgetSource,
	}
	if err := repo.CreateBudgetItem(ctx, &out.BudgetItem); err != nil {
		return nil, err
	}
	return out, nil
}
