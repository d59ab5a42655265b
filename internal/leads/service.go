package leads

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/broadcast"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/metrics"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
	"github.com/angelmondragon/weddingplanner-backend/pkg/validate"
)

const (
	moduleLeads  = "leads"
	moduleStages = "pipeline_stages"
)

var (
	leadQueries  = []string{"leads.list", "leads.detail", "pipeline.board"}
	stageQueries = []string{"pipeline.stages", "pipeline.board"}
)

type tenantScope interface {
	WithTenantScope(ctx context.Context, p tenancy.Principal, fn func(ctx context.Context, tx *gorm.DB) error) error
}

// Service runs pipeline operations for a principal and broadcasts committed
// changes.
type Service struct {
	scope    tenantScope
	machine  *Machine
	notifier broadcast.Notifier
	metrics  *metrics.LifecycleMetrics
	logg     *logger.Logger
}

// NewService wires the pipeline service. notifier and m may be nil.
func NewService(scope tenantScope, machine *Machine, notifier broadcast.Notifier, m *metrics.LifecycleMetrics, logg *logger.Logger) (*Service, error) {
	if scope == nil {
		return nil, errors.New("tenant scope required")
	}
	if machine == nil {
		return nil, errors.New("machine required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	if notifier == nil {
		notifier = broadcast.Noop{}
	}
	return &Service{scope: scope, machine: machine, notifier: notifier, metrics: m, logg: logg}, nil
}

func (s *Service) CreateLead(ctx context.Context, p tenancy.Principal, input CreateLeadInput) (lead *models.Lead, err error) {
	defer s.observe(ctx, "lead.create", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		lead, err = s.machine.CreateLead(ctx, tx, companyID, p.UserID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, broadcast.TypeCreated, moduleLeads, lead.ID, companyID, leadQueries)
	return lead, nil
}

func (s *Service) MoveStage(ctx context.Context, p tenancy.Principal, leadID, stageID uuid.UUID) (lead *models.Lead, err error) {
	defer s.observe(ctx, "lead.move_stage", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		lead, err = s.machine.MoveStage(ctx, tx, companyID, p.UserID, leadID, stageID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, broadcast.TypeUpdated, moduleLeads, lead.ID, companyID, leadQueries)
	return lead, nil
}

// ConvertToClient converts the lead and announces both the lead update and
// the new client.
func (s *Service) ConvertToClient(ctx context.Context, p tenancy.Principal, leadID uuid.UUID, overrides ConvertOverrides) (conv *Conversion, err error) {
	defer s.observe(ctx, "lead.convert", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(&overrides); err != nil {
		return nil, err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		conv, err = s.machine.ConvertToClient(ctx, tx, companyID, p.UserID, leadID, overrides)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"lead_id":   leadID.String(),
		"client_id": conv.Client.Client.ID.String(),
	}), "lead converted")
	s.notify(ctx, broadcast.TypeUpdated, moduleLeads, leadID, companyID, leadQueries)
	s.notify(ctx, broadcast.TypeCreated, "clients", conv.Client.Client.ID, companyID, []string{"clients.list"})
	return conv, nil
}

func (s *Service) AddNote(ctx context.Context, p tenancy.Principal, leadID uuid.UUID, note string) (activity *models.PipelineActivity, err error) {
	defer s.observe(ctx, "lead.note", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		activity, err = s.machine.AddNote(ctx, tx, companyID, p.UserID, leadID, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, broadcast.TypeUpdated, moduleLeads, leadID, companyID, []string{"leads.detail"})
	return activity, nil
}

func (s *Service) CreateStage(ctx context.Context, p tenancy.Principal, input CreateStageInput) (stage *models.PipelineStage, err error) {
	defer s.observe(ctx, "stage.create", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		stage, err = s.machine.CreateStage(ctx, tx, companyID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, broadcast.TypeCreated, moduleStages, stage.ID, companyID, stageQueries)
	return stage, nil
}

func (s *Service) DeactivateStage(ctx context.Context, p tenancy.Principal, stageID uuid.UUID) (err error) {
	defer s.observe(ctx, "stage.deactivate", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		return s.machine.DeactivateStage(ctx, tx, companyID, stageID)
	})
	if err != nil {
		return err
	}
	s.notify(ctx, broadcast.TypeDeleted, moduleStages, stageID, companyID, stageQueries)
	return nil
}

// SeedDefaultStages seeds the principal's company; it is a no-op when the
// company already has a pipeline.
func (s *Service) SeedDefaultStages(ctx context.Context, p tenancy.Principal) (stages []models.PipelineStage, err error) {
	defer s.observe(ctx, "stage.seed", time.Now(), &err)

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		stages, err = s.machine.SeedDefaultStages(ctx, tx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(stages) > 0 {
		s.notify(ctx, broadcast.TypeCreated, moduleStages, companyID, companyID, stageQueries)
	}
	return stages, nil
}

func (s *Service) observe(ctx context.Context, operation string, started time.Time, err *error) {
	s.metrics.Observe(operation, started, *err)
	if *err != nil && pkgerrors.CodeOf(*err) == pkgerrors.CodeInternal {
		s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Diagnose(*err).Fields()), operation+" failed", *err)
	}
}

func (s *Service) notify(ctx context.Context, kind, module string, entityID, companyID uuid.UUID, queries []string) {
	s.notifier.Notify(ctx, broadcast.Message{
		Type:            kind,
		Module:          module,
		EntityID:        entityID.String(),
		CompanyID:       companyID.String(),
		AffectedQueries: queries,
	})
}
