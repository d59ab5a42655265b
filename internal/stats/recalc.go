// Package stats recomputes the aggregates cached on a client row.
package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/repo"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Snapshot is the set of cached client aggregates.
type Snapshot struct {
	GuestCount      int64
	ConfirmedGuests int64
	VendorCount     int64
	BudgetEstimated decimal.Decimal
	BudgetPaid      decimal.Decimal
	UpdatedAt       time.Time
}

// Recalculator recomputes client aggregates inside the caller's transaction.
type Recalculator struct {
	now func() time.Time
}

// NewRecalculator returns a Recalculator.
func NewRecalculator() *Recalculator {
	return &Recalculator{now: time.Now}
}

// Recalc recomputes the aggregates of clientID from its dependent rows and
// persists them onto the client. Every read and the write are filtered to
// companyID; a client outside it is treated as missing and yields
// gorm.ErrRecordNotFound.
func (r *Recalculator) Recalc(ctx context.Context, tx *gorm.DB, companyID, clientID uuid.UUID) (*Snapshot, error) {
	base := repo.NewBase(tx)
	scoped := func() *gorm.DB { return base.Scoped(ctx, companyID) }
	snap := &Snapshot{UpdatedAt: r.now().UTC()}

	if err := scoped().Model(&models.Guest{}).Where("client_id = ?", clientID).Count(&snap.GuestCount).Error; err != nil {
		return nil, err
	}
	if err := scoped().Model(&models.Guest{}).
		Where("client_id = ? AND rsvp_status = ?", clientID, enums.RSVPStatusAttending).
		Count(&snap.ConfirmedGuests).Error; err != nil {
		return nil, err
	}
	if err := scoped().Model(&models.ClientVendor{}).Where("client_id = ?", clientID).Count(&snap.VendorCount).Error; err != nil {
		return nil, err
	}

	var err error
	snap.BudgetEstimated, err = sum(scoped().Model(&models.BudgetItem{}).
		Select("COALESCE(SUM(estimated_cost), 0)").
		Where("client_id = ?", clientID))
	if err != nil {
		return nil, err
	}
	snap.BudgetPaid, err = sum(scoped().Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("client_id = ? AND status = ?", clientID, enums.PaymentStatusPaid))
	if err != nil {
		return nil, err
	}

	res := scoped().Model(&models.Client{}).Where("id = ?", clientID).Updates(map[string]any{
		"stats_guest_count":      snap.GuestCount,
		"stats_confirmed_guests": snap.ConfirmedGuests,
		"stats_vendor_count":     snap.VendorCount,
		"stats_budget_estimated": snap.BudgetEstimated,
		"stats_budget_paid":      snap.BudgetPaid,
		"stats_updated_at":       snap.UpdatedAt,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return snap, nil
}

func sum(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
