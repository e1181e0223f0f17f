package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	analysisMeterName = "focus.analysis"
)

type AnalysisMetrics struct {
	reportsBuilt        metric.Int64Counter
	itemsAnalyzed       metric.Int64Counter
	reportBuildDuration metric.Float64Histogram
	remindersScheduled  metric.Int64Counter
}

func NewAnalysisMetrics() (*AnalysisMetrics, error) {
	meter := otel.Meter(analysisMeterName)

	reportsBuilt, err := meter.Int64Counter(
		"analysis_reports_total",
		metric.WithDescription("Total number of analysis reports built"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, err
	}

	itemsAnalyzed, err := meter.Int64Counter(
		"analysis_items_total",
		metric.WithDescription("Total number of items fed into analysis reports"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	reportBuildDuration, err := meter.Float64Histogram(
		"analysis_report_duration_seconds",
		metric.WithDescription("Time spent fetching and aggregating a report"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	remindersScheduled, err := meter.Int64Counter(
		"analysis_reminders_total",
		metric.WithDescription("Reminder registrations by outcome"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{
		reportsBuilt:        reportsBuilt,
		itemsAnalyzed:       itemsAnalyzed,
		reportBuildDuration: reportBuildDuration,
		remindersScheduled:  remindersScheduled,
	}, nil
}

func (m *AnalysisMetrics) RecordReportBuilt(ctx context.Context, kind, outcome string) {
	m.reportsBuilt.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *AnalysisMetrics) RecordItemsAnalyzed(ctx context.Context, kind string, count int) {
	m.itemsAnalyzed.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *AnalysisMetrics) RecordReportDuration(ctx context.Context, kind string, duration time.Duration) {
	m.reportBuildDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *AnalysisMetrics) RecordReminder(ctx context.Context, outcome string) {
	m.remindersScheduled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
