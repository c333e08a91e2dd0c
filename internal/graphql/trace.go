package graphql

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"

// traceOperation starts a client span for an upstream operation. The
// returned function ends it; operations slower than slowThreshold are also
// logged when a logger is given.
func traceOperation(ctx context.Context, doc Document, slowThreshold time.Duration, logger *slog.Logger) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "graphql."+doc.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", doc.Name),
			attribute.String("graphql.operation.type", string(doc.Kind)),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if slowThreshold <= 0 || logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= slowThreshold {
			attrs := []any{
				slog.String("operation", doc.Name),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			logger.WarnContext(ctx, "slow upstream operation", attrs...)
		}
	}
}
