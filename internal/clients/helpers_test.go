package clients

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/broadcast"
	"github.com/angelmondragon/weddingplanner-backend/internal/budget"
	"github.com/angelmondragon/weddingplanner-backend/internal/stats"
	"github.com/angelmondragon/weddingplanner-backend/internal/vendors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/metrics"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
)

// dependentTables are every table the cascade owns.
var dependentTables = CascadeTables()

type countingRunner struct {
	*db.Client
	mu      sync.Mutex
	txCalls int
}

func (r *countingRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.mu.Lock()
	r.txCalls++
	r.mu.Unlock()
	return r.Client.WithTx(ctx, fn)
}

type recordingNotifier struct {
	messages []broadcast.Message
}

func (n *recordingNotifier) Notify(_ context.Context, msg broadcast.Message) {
	n.messages = append(n.messages, msg)
}

// failingLinker fails any entry whose name contains trigger and delegates
// the rest to the real linker.
type failingLinker struct {
	trigger string
	next    *vendors.Linker
}

func (f failingLinker) Link(ctx context.Context, tx *gorm.DB, companyID, clientID uuid.UUID, entry vendors.Entry) (*vendors.Link, error) {
	if strings.Contains(entry.Name, f.trigger) {
		// A real statement error, so the savepoint actually has something to undo.
		if err := tx.WithContext(ctx).Exec("INSERT INTO missing_table (id) VALUES (1)").Error; err != nil {
			return nil, err
		}
	}
	return f.next.Link(ctx, tx, companyID, clientID, entry)
}

type failingRecalc struct{ err error }

func (f failingRecalc) Recalc(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) (*stats.Snapshot, error) {
	return nil, f.err
}

type fixture struct {
	db        *db.Client
	runner    *countingRunner
	reg       *prometheus.Registry
	notifier  *recordingNotifier
	orch      *Orchestrator
	svc       *Service
	companyID uuid.UUID
	principal tenancy.Principal
}

type fixtureOption func(*fixtureDeps)

type fixtureDeps struct {
	linker vendorLinker
	recalc statsRecalculator
}

func withLinker(l vendorLinker) fixtureOption {
	return func(d *fixtureDeps) { d.linker = l }
}

func withRecalc(r statsRecalculator) fixtureOption {
	return func(d *fixtureDeps) { d.recalc = r }
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	deps := fixtureDeps{linker: vendors.NewLinker(), recalc: stats.NewRecalculator()}
	for _, opt := range opts {
		opt(&deps)
	}

	client := dbtest.Open(t)
	runner := &countingRunner{Client: client}
	logg := testLogger()
	reg := prometheus.NewRegistry()
	m := metrics.NewLifecycleMetrics(reg)

	guard, err := tenancy.NewGuard(runner, tenancy.NoopBinder{}, logg)
	require.NoError(t, err)
	orch, err := NewOrchestrator(budget.DefaultCatalog(), deps.linker, deps.recalc, logg, m)
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	svc, err := NewService(ServiceParams{
		Scope:        guard,
		Orchestrator: orch,
		Deleter:      NewDeleter(),
		Notifier:     notifier,
		Metrics:      m,
		Logger:       logg,
	})
	require.NoError(t, err)

	companyID := uuid.New()
	return &fixture{
		db:        client,
		runner:    runner,
		reg:       reg,
		notifier:  notifier,
		orch:      orch,
		svc:       svc,
		companyID: companyID,
		principal: tenancy.Principal{UserID: uuid.New(), CompanyID: &companyID, Role: enums.RoleCompanyAdmin},
	}
}

func strPtr(v string) *string { return &v }

type stubScope struct{}

func (stubScope) WithTenantScope(context.Context, tenancy.Principal, func(ctx context.Context, tx *gorm.DB) error) error {
	return nil
}
