package leads

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/broadcast"
	"github.com/angelmondragon/weddingplanner-backend/internal/budget"
	"github.com/angelmondragon/weddingplanner-backend/internal/clients"
	"github.com/angelmondragon/weddingplanner-backend/internal/stats"
	"github.com/angelmondragon/weddingplanner-backend/internal/vendors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
)

type countingRunner struct {
	*db.Client
	txCalls int
}

func (r *countingRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.txCalls++
	return r.Client.WithTx(ctx, fn)
}

type recordingNotifier struct {
	messages []broadcast.Message
}

func (n *recordingNotifier) Notify(_ context.Context, msg broadcast.Message) {
	n.messages = append(n.messages, msg)
}

type failingCreator struct{ err error }

func (f failingCreator) CreateClient(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, clients.CreateClientInput) (*clients.CreateResult, error) {
	return nil, f.err
}

type fixture struct {
	db        *db.Client
	runner    *countingRunner
	notifier  *recordingNotifier
	machine   *Machine
	svc       *Service
	companyID uuid.UUID
	principal tenancy.Principal
	stages    map[string]models.PipelineStage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	client := dbtest.Open(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	orch, err := clients.NewOrchestrator(budget.DefaultCatalog(), vendors.NewLinker(), stats.NewRecalculator(), logg, nil)
	require.NoError(t, err)
	machine, err := NewMachine(orch)
	require.NoError(t, err)

	runner := &countingRunner{Client: client}
	guard, err := tenancy.NewGuard(runner, tenancy.NoopBinder{}, logg)
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	svc, err := NewService(guard, machine, notifier, nil, logg)
	require.NoError(t, err)

	companyID := uuid.New()
	f := &fixture{
		db:        client,
		runner:    runner,
		notifier:  notifier,
		machine:   machine,
		svc:       svc,
		companyID: companyID,
		principal: tenancy.Principal{UserID: uuid.New(), CompanyID: &companyID, Role: enums.RoleStaff},
		stages:    map[string]models.PipelineStage{},
	}
	return f
}

// seed writes the default pipeline and indexes it by name.
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	f.tx(t, func(tx *gorm.DB) error {
		return Seeder{}.SeedDefaultStages(context.Background(), tx, f.companyID)
	})
	var stages []models.PipelineStage
	require.NoError(t, f.db.DB().Where("company_id = ?", f.companyID).Find(&stages).Error)
	for _, s := range stages {
		f.stages[s.Name] = s
	}
}

func (f *fixture) tx(t *testing.T, fn func(tx *gorm.DB) error) {
	t.Helper()
	require.NoError(t, f.db.WithTx(context.Background(), fn))
}

func (f *fixture) newLead(t *testing.T, input CreateLeadInput) *models.Lead {
	t.Helper()
	var lead *models.Lead
	f.tx(t, func(tx *gorm.DB) error {
		var err error
		lead, err = f.machine.CreateLead(context.Background(), tx, f.companyID, f.principal.UserID, input)
		return err
	})
	return lead
}

func (f *fixture) reload(t *testing.T, leadID uuid.UUID) models.Lead {
	t.Helper()
	var lead models.Lead
	require.NoError(t, f.db.DB().First(&lead, "id = ?", leadID).Error)
	return lead
}

func (f *fixture) activities(t *testing.T, leadID uuid.UUID, kind enums.PipelineActivityType) []models.PipelineActivity {
	t.Helper()
	var out []models.PipelineActivity
	require.NoError(t, f.db.DB().Where("lead_id = ? AND type = ?", leadID, kind).Order("created_at ASC").Find(&out).Error)
	return out
}

func strPtr(v string) *string { return &v }
