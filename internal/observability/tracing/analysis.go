package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const analysisTracerName = "github.com/KasumiMercury/primind-focus-assistant/internal/service/analysis"

func AnalysisTracer() trace.Tracer {
	return otel.Tracer(analysisTracerName)
}

func StartReportSpan(ctx context.Context, kind string, startTime, endTime time.Time) (context.Context, trace.Span) {
	return AnalysisTracer().Start(ctx, "analysis.report."+kind,
		trace.WithAttributes(
			attribute.String("report.kind", kind),
			attribute.String("window.start", startTime.Format(time.RFC3339)),
			attribute.String("window.end", endTime.Format(time.RFC3339)),
			attribute.Int64("window.hours", int64(endTime.Sub(startTime).Hours())),
		),
	)
}

func StartReminderSpan(ctx context.Context, itemID string, scheduleTime time.Time) (context.Context, trace.Span) {
	return AnalysisTracer().Start(ctx, "analysis.reminder",
		trace.WithAttributes(
			attribute.String("item_id", itemID),
			attribute.String("reminder.schedule_time", scheduleTime.Format(time.RFC3339)),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return AnalysisTracer().Start(ctx, "analysis.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return AnalysisTracer().Start(ctx, "analysis.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordReportResult(span trace.Span, itemCount int, err error) {
	span.SetAttributes(
		attribute.Int("report.item_count", itemCount),
	)
	RecordResult(span, err)
}

// RecordResult marks the span failed when err is non-nil.
func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest writes the span context of ctx into req's headers.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
