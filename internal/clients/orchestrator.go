package clients

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/budget"
	"github.com/angelmondragon/weddingplanner-backend/internal/stats"
	"github.com/angelmondragon/weddingplanner-backend/internal/vendors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/metrics"
)

const (
	activityClientCreated = "client.created"
	budgetSourceTemplate  = "template"
)

type vendorLinker interface {
	Link(ctx context.Context, tx *gorm.DB, companyID, clientID uuid.UUID, entry vendors.Entry) (*vendors.Link, error)
}

type statsRecalculator interface {
	Recalc(ctx context.Context, tx *gorm.DB, companyID, clientID uuid.UUID) (*stats.Snapshot, error)
}

// CreateResult is everything CreateClient wrote.
type CreateResult struct {
	Client      models.Client
	Event       *models.Event
	BudgetItems []models.BudgetItem
	Vendors     []vendors.Link
	Report      Report
}

// Orchestrator creates a client and its derived records inside the caller's
// transaction.
type Orchestrator struct {
	catalog *budget.Catalog
	vendors vendorLinker
	stats   statsRecalculator
	logg    *logger.Logger
	metrics *metrics.LifecycleMetrics
}

// NewOrchestrator wires the orchestrator. metrics may be nil.
func NewOrchestrator(catalog *budget.Catalog, linker vendorLinker, recalc statsRecalculator, logg *logger.Logger, m *metrics.LifecycleMetrics) (*Orchestrator, error) {
	if catalog == nil {
		return nil, errors.New("budget catalog required")
	}
	if linker == nil {
		return nil, errors.New("vendor linker required")
	}
	if recalc == nil {
		return nil, errors.New("stats recalculator required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Orchestrator{catalog: catalog, vendors: linker, stats: recalc, logg: logg, metrics: m}, nil
}

// CreateClient inserts the client, then runs the derived event, budget
// template and vendor steps. Those steps are best-effort: each runs in its own
// savepoint and a failure is recorded in the report instead of aborting.
// Inserting the client, the audit entry and the stats refresh are fatal.
// Calling it twice creates two clients.
func (o *Orchestrator) CreateClient(ctx context.Context, tx *gorm.DB, companyID, creatorUserID uuid.UUID, input CreateClientInput) (*CreateResult, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "client creation requires a company")
	}

	client := input.ToModel(companyID, creatorUserID)
	if err := tx.WithContext(ctx).Create(client).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create client")
	}
	ctx = o.logg.WithClientID(ctx, client.ID.String())
	res := &CreateResult{}

	if input.WeddingDate != nil {
		event := &models.Event{
			CompanyID: companyID,
			ClientID:  client.ID,
			Title:     EventTitleFor(input),
			Type:      enums.EventTypeCeremony,
			StartsAt:  input.WeddingDate,
			Location:  client.Venue,
			IsPrimary: true,
		}
		if o.bestEffort(ctx, tx, &res.Report, StepEvent, "", func(sp *gorm.DB) error {
			return sp.WithContext(ctx).Create(event).Error
		}) {
			res.Event = event
		}
	}

	if input.HasBudget() {
		items := o.templateItems(companyID, client.ID, client.WeddingType, *input.Budget)
		if len(items) > 0 && o.bestEffort(ctx, tx, &res.Report, StepBudget, client.WeddingType, func(sp *gorm.DB) error {
			return sp.WithContext(ctx).Create(&items).Error
		}) {
			res.BudgetItems = append(res.BudgetItems, items...)
		}
	}

	for _, entry := range vendors.ParseList(input.Vendors) {
		var link *vendors.Link
		if o.bestEffort(ctx, tx, &res.Report, StepVendor, entry.Raw, func(sp *gorm.DB) error {
			var err error
			link, err = o.vendors.Link(ctx, sp, companyID, client.ID, entry)
			return err
		}) {
			res.Vendors = append(res.Vendors, *link)
			res.BudgetItems = append(res.BudgetItems, link.BudgetItem)
		}
	}

	activity := &models.ClientActivity{
		CompanyID:   companyID,
		ClientID:    client.ID,
		ActorUserID: actor(creatorUserID),
		Action:      activityClientCreated,
		Metadata: map[string]any{
			"budgetItems":    len(res.BudgetItems),
			"vendors":        len(res.Vendors),
			"failedSteps":    len(res.Report.Failures()),
			"eventGenerated": res.Event != nil,
		},
	}
	if err := tx.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record client activity")
	}

	if _, err := o.stats.Recalc(ctx, tx, companyID, client.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recalculate client stats")
	}
	if err := tx.WithContext(ctx).First(client, "id = ?", client.ID).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload client")
	}
	res.Client = *client
	return res, nil
}

func (o *Orchestrator) templateItems(companyID, clientID uuid.UUID, weddingType string, total decimal.Decimal) []models.BudgetItem {
	estimates := budget.Expand(o.catalog.Template(weddingType), total)
	items := make([]models.BudgetItem, 0, len(estimates))
	for _, e := range estimates {
		items = append(items, models.BudgetItem{
			CompanyID:     companyID,
			ClientID:      clientID,
			Category:      e.Category,
			Segment:       e.Segment,
			Item:          e.Item,
			Percentage:    decimal.NullDecimal{Decimal: e.Percentage, Valid: true},
			EstimatedCost: e.Cost,
			ActualCost:    decimal.Zero,
			PaidAmount:    decimal.Zero,
			Source:        budgetSourceTemplate,
		})
	}
	return items
}

// bestEffort runs fn in a savepoint so a failed statement leaves the outer
// transaction usable, and records the outcome.
func (o *Orchestrator) bestEffort(ctx context.Context, tx *gorm.DB, report *Report, step, entry string, fn func(sp *gorm.DB) error) bool {
	err := tx.Transaction(fn)
	if err == nil {
		report.add(StepResult{Step: step, Entry: entry})
		return true
	}

	report.add(StepResult{
		Step:  step,
		Entry: entry,
		Err:   pkgerrors.Wrap(pkgerrors.CodeInternal, err, step+" step failed"),
	})
	o.metrics.IncStepFailure(step)
	fields := map[string]any{"step": step, "error": err.Error()}
	if entry != "" {
		fields["entry"] = entry
	}
	o.logg.Warn(o.logg.WithFields(ctx, fields), "best-effort client step failed")
	return false
}

func actor(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
