//go:build !gcloud

package reportrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

const measurement = "report_run"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReportRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "report recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, report recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "report recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
		bucket:   cfg.InfluxDBBucket,
	}, nil
}

func (r *influxDBRecorder) RecordReport(ctx context.Context, record domain.ReportRecord) error {
	fields := map[string]any{
		"item_count":   record.ItemCount,
		"window_start": record.WindowStart.Unix(),
		"window_end":   record.WindowEnd.Unix(),
	}
	for key, count := range record.Counts {
		fields["count_"+key] = count
	}

	generatedAt := record.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	point := influxdb2.NewPoint(
		measurement,
		map[string]string{"kind": record.Kind},
		fields,
		generatedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("failed to write report to InfluxDB bucket %s: %w", r.bucket, err)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
