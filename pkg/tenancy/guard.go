package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type connRunner interface {
	WithConn(ctx context.Context, fn func(conn *gorm.DB) error) error
}

// Runner is satisfied by *db.Client.
type Runner interface {
	txRunner
	connRunner
}

// Guard binds units of work to exactly one tenant.
type Guard struct {
	db     Runner
	binder Binder
	logg   *logger.Logger
	tracer trace.Tracer
}

// NewGuard wires the guard dependencies.
func NewGuard(db Runner, binder Binder, logg *logger.Logger) (*Guard, error) {
	if db == nil {
		return nil, errors.New("db runner required")
	}
	if binder == nil {
		return nil, errors.New("binder required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Guard{db: db, binder: binder, logg: logg, tracer: defaultTracer()}, nil
}

// WithTracer swaps the tracer used for scope spans.
func (g *Guard) WithTracer(t trace.Tracer) *Guard {
	if t != nil {
		g.tracer = t
	}
	return g
}

// WithTenantScope runs fn in one transaction bound to the principal's company
// and role. The settings are transaction local and vanish on commit or rollback.
// A non super admin principal without a company fails before the transaction opens.
func (g *Guard) WithTenantScope(ctx context.Context, p Principal, fn func(ctx context.Context, tx *gorm.DB) error) (err error) {
	ctx, span := g.startSpan(ctx, spanTenantScope, p)
	defer func() { endSpan(span, err) }()

	if err := p.Validate(); err != nil {
		return err
	}
	ctx = g.annotate(ctx, p)

	return g.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := g.binder.Bind(ctx, tx, companySetting(p), p.Role.String(), true); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bind tenant scope")
		}
		return fn(ctx, tx)
	})
}

// WithSessionScope pins one pooled connection, binds the settings at session
// level and clears them on every exit path before the connection is released.
// Prefer WithTenantScope; this exists for long lived reads that cannot sit in a
// transaction.
func (g *Guard) WithSessionScope(ctx context.Context, p Principal, fn func(ctx context.Context, conn *gorm.DB) error) (scopeErr error) {
	ctx, span := g.startSpan(ctx, spanSessionScope, p)
	defer func() { endSpan(span, scopeErr) }()

	if err := p.Validate(); err != nil {
		return err
	}
	ctx = g.annotate(ctx, p)

	return g.db.WithConn(ctx, func(conn *gorm.DB) (err error) {
		if bindErr := g.binder.Bind(ctx, conn, companySetting(p), p.Role.String(), false); bindErr != nil {
			// a partial bind must not survive on the pooled connection
			if clearErr := g.binder.Clear(context.WithoutCancel(ctx), conn); clearErr != nil {
				g.logg.Error(ctx, "failed to clear session tenant scope", clearErr)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, bindErr, "bind session tenant scope")
		}
		defer func() {
			clearErr := g.binder.Clear(context.WithoutCancel(ctx), conn)
			if clearErr == nil {
				return
			}
			g.logg.Error(ctx, "failed to clear session tenant scope", clearErr)
			if err == nil {
				err = pkgerrors.Wrap(pkgerrors.CodeInternal, clearErr, "clear session tenant scope")
			}
		}()
		return fn(ctx, conn)
	})
}

// WithSystemScope runs provisioning work that has no tenant yet.
func (g *Guard) WithSystemScope(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) (err error) {
	ctx, span := g.startSpan(ctx, spanSystemScope, Principal{Role: RoleSystem})
	defer func() { endSpan(span, err) }()

	ctx = g.logg.WithActorRole(ctx, RoleSystem)
	return g.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := g.binder.Bind(ctx, tx, "", RoleSystem, true); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bind system scope")
		}
		return fn(ctx, tx)
	})
}

func (g *Guard) annotate(ctx context.Context, p Principal) context.Context {
	fields := map[string]any{"actor_role": p.Role.String()}
	if p.UserID != uuid.Nil {
		fields["user_id"] = p.UserID.String()
	}
	if p.HasCompany() {
		fields["company_id"] = p.CompanyID.String()
	}
	return g.logg.WithFields(ctx, fields)
}

func companySetting(p Principal) string {
	if !p.HasCompany() {
		return ""
	}
	return p.CompanyID.String()
}
