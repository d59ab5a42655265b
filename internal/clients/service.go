package clients

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/broadcast"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/metrics"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
	"github.com/angelmondragon/weddingplanner-backend/pkg/validate"
)

const module = "clients"

var affectedQueries = []string{"clients.list", "clients.detail", "dashboard.stats"}

type tenantScope interface {
	WithTenantScope(ctx context.Context, p tenancy.Principal, fn func(ctx context.Context, tx *gorm.DB) error) error
}

// Service runs client lifecycle operations for a principal.
type Service struct {
	scope        tenantScope
	orchestrator *Orchestrator
	deleter      *Deleter
	notifier     broadcast.Notifier
	metrics      *metrics.LifecycleMetrics
	logg         *logger.Logger
}

// ServiceParams groups the collaborators of a Service.
type ServiceParams struct {
	Scope        tenantScope
	Orchestrator *Orchestrator
	Deleter      *Deleter
	Notifier     broadcast.Notifier
	Metrics      *metrics.LifecycleMetrics
	Logger       *logger.Logger
}

// NewService validates params and returns a Service.
func NewService(p ServiceParams) (*Service, error) {
	if p.Scope == nil {
		return nil, errors.New("tenant scope required")
	}
	if p.Orchestrator == nil {
		return nil, errors.New("orchestrator required")
	}
	if p.Deleter == nil {
		return nil, errors.New("deleter required")
	}
	if p.Logger == nil {
		return nil, errors.New("logger required")
	}
	if p.Notifier == nil {
		p.Notifier = broadcast.Noop{}
	}
	return &Service{
		scope:        p.Scope,
		orchestrator: p.Orchestrator,
		deleter:      p.Deleter,
		notifier:     p.Notifier,
		metrics:      p.Metrics,
		logg:         p.Logger,
	}, nil
}

// Create validates input and creates a client in the principal's company.
func (s *Service) Create(ctx context.Context, p tenancy.Principal, input CreateClientInput) (res *CreateResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("client.create", started, err)
		s.logFailure(ctx, "client.create", err)
	}()

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}

	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		res, err = s.orchestrator.CreateClient(ctx, tx, companyID, p.UserID, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if failures := res.Report.Failures(); len(failures) > 0 {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"client_id":     res.Client.ID.String(),
			"failed_steps":  len(failures),
			"report_errors": res.Report.Err().Error(),
		}), "client created with skipped steps")
	}
	s.notifier.Notify(ctx, broadcast.Message{
		Type:            broadcast.TypeCreated,
		Module:          module,
		EntityID:        res.Client.ID.String(),
		CompanyID:       companyID.String(),
		AffectedQueries: affectedQueries,
	})
	return res, nil
}

// Delete cascades a client of the principal's company.
func (s *Service) Delete(ctx context.Context, p tenancy.Principal, clientID uuid.UUID) (res *DeleteResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("client.delete", started, err)
		s.logFailure(ctx, "client.delete", err)
	}()

	companyID, err := p.RequireCompany()
	if err != nil {
		return nil, err
	}
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}

	err = s.scope.WithTenantScope(ctx, p, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		res, err = s.deleter.DeleteClient(ctx, tx, clientID, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, c := range res.Counts {
		s.metrics.AddCascadeRows(c.Table, c.Rows)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"client_id":    clientID.String(),
		"rows_deleted": res.Total(),
	}), "client deleted")
	s.notifier.Notify(ctx, broadcast.Message{
		Type:            broadcast.TypeDeleted,
		Module:          module,
		EntityID:        clientID.String(),
		CompanyID:       companyID.String(),
		AffectedQueries: affectedQueries,
	})
	return res, nil
}

func (s *Service) logFailure(ctx context.Context, operation string, err error) {
	if err == nil || pkgerrors.CodeOf(err) != pkgerrors.CodeInternal {
		return
	}
	s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Diagnose(err).Fields()), operation+" failed", err)
}
