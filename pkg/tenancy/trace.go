package tenancy

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

const (
	tracerName = "github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"

	spanTenantScope  = "tenancy.tenant_scope"
	spanSessionScope = "tenancy.session_scope"
	spanSystemScope  = "tenancy.system_scope"
)

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func (g *Guard) startSpan(ctx context.Context, name string, p Principal) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("tenancy.role", p.Role.String())}
	if p.HasCompany() {
		attrs = append(attrs, attribute.String("tenancy.company_id", p.CompanyID.String()))
	}
	return g.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.code", string(pkgerrors.CodeOf(err))))
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
