package domain

import (
	"context"
	"time"
)

type ReportRecord struct {
	Kind        string
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	ItemCount   int
	Counts      map[string]int
}

//go:generate mockgen -source=report_recorder.go -destination=report_recorder_mock.go -package=domain

type ReportRecorder interface {
	RecordReport(ctx context.Context, record ReportRecord) error
	Close() error
}
