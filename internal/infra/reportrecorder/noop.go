package reportrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ReportRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordReport(_ context.Context, _ domain.ReportRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
