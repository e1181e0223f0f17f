//go:build gcloud

package reportrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

type bigQueryCount struct {
	Key   string `bigquery:"key"`
	Value int64  `bigquery:"value"`
}

type bigQueryRecord struct {
	RecordedAt  time.Time       `bigquery:"recorded_at"`
	Kind        string          `bigquery:"kind"`
	WindowStart time.Time       `bigquery:"window_start"`
	WindowEnd   time.Time       `bigquery:"window_end"`
	ItemCount   int64           `bigquery:"item_count"`
	Counts      []bigQueryCount `bigquery:"counts"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReportRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "report recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, report recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, report recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "report recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordReport(ctx context.Context, record domain.ReportRecord) error {
	keys := make([]string, 0, len(record.Counts))
	for key := range record.Counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	counts := make([]bigQueryCount, 0, len(keys))
	for _, key := range keys {
		counts = append(counts, bigQueryCount{Key: key, Value: int64(record.Counts[key])})
	}

	row := &bigQueryRecord{
		RecordedAt:  time.Now(),
		Kind:        record.Kind,
		WindowStart: record.WindowStart,
		WindowEnd:   record.WindowEnd,
		ItemCount:   int64(record.ItemCount),
		Counts:      counts,
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("failed to insert report to BigQuery: %w", err)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
