package analysis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/metrics"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/tracing"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/coach"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/focus"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/period"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/productivity"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/window"
)

const (
	KindDailyFocus   = "daily_focus"
	KindWeekly       = "weekly"
	KindPeriod       = "period"
	KindProductivity = "productivity"
)

type DailyFocusResponse struct {
	Date   string            `json:"date"`
	Window domain.TimeWindow `json:"window"`
	focus.Report
}

type PeriodResponse struct {
	Window    domain.TimeWindow `json:"window"`
	ItemCount int               `json:"item_count"`
	period.Report
}

type Service struct {
	items           domain.ItemRepository
	calculator      *window.Calculator
	formatter       *coach.Formatter
	recorder        domain.ReportRecorder
	analysisMetrics *metrics.AnalysisMetrics
}

func NewService(
	items domain.ItemRepository,
	calculator *window.Calculator,
	formatter *coach.Formatter,
	recorder domain.ReportRecorder,
	analysisMetrics *metrics.AnalysisMetrics,
) *Service {
	return &Service{
		items:           items,
		calculator:      calculator,
		formatter:       formatter,
		recorder:        recorder,
		analysisMetrics: analysisMetrics,
	}
}

func (s *Service) DailyFocus(ctx context.Context, ref time.Time) (*DailyFocusResponse, error) {
	w, date := s.calculator.TodayWindow(ref)

	ctx, finish := s.begin(ctx, KindDailyFocus, w)
	items, err := s.fetchWindow(ctx, w)
	if err != nil {
		finish(0, nil, err)
		return nil, err
	}

	report := focus.Build(items, ref, s.formatter)
	finish(len(items), map[string]int{
		"overdue":   len(report.Overdue),
		"scheduled": len(report.Scheduled),
		"gaps":      len(report.Gaps),
	}, nil)

	return &DailyFocusResponse{
		Date:   date.String(),
		Window: w,
		Report: report,
	}, nil
}

func (s *Service) Weekly(ctx context.Context, ref time.Time) (*PeriodResponse, error) {
	return s.period(ctx, KindWeekly, s.calculator.Next7DaysWindow(ref), ref)
}

// Period reports on the civil dates startDate through endDate. Risk is
// measured from now.
func (s *Service) Period(ctx context.Context, startDate, endDate string, now time.Time) (*PeriodResponse, error) {
	w, err := s.calculator.PeriodWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.period(ctx, KindPeriod, w, now)
}

func (s *Service) period(ctx context.Context, kind string, w domain.TimeWindow, now time.Time) (*PeriodResponse, error) {
	ctx, finish := s.begin(ctx, kind, w)
	items, err := s.fetchWindow(ctx, w)
	if err != nil {
		finish(0, nil, err)
		return nil, err
	}

	report := period.Build(items, now, s.formatter)
	finish(len(items), map[string]int{
		"high_priority":  len(report.HighPriority),
		"strategic_wins": len(report.StrategicWins),
		"risk_watch":     len(report.RiskWatch),
	}, nil)

	return &PeriodResponse{
		Window:    w,
		ItemCount: len(items),
		Report:    report,
	}, nil
}

func (s *Service) Productivity(ctx context.Context, fromDate, toDate string) (*productivity.Report, error) {
	w, err := s.calculator.PeriodWindow(fromDate, toDate)
	if err != nil {
		return nil, err
	}

	ctx, finish := s.begin(ctx, KindProductivity, w)
	items, err := s.items.FetchAllItems(ctx)
	if errors.Is(err, domain.ErrLookup) {
		slog.WarnContext(ctx, "item collection not found, reporting empty",
			slog.String("kind", KindProductivity),
		)
		items, err = nil, nil
	}
	if err != nil {
		finish(0, nil, err)
		return nil, err
	}

	report := productivity.Build(items, w, s.calculator.Location())
	finish(report.Total, map[string]int{
		"done":    report.Done,
		"untimed": report.Untimed,
		"weeks":   len(report.Weeks),
	}, nil)

	return &report, nil
}

// fetchWindow treats a missing collection as empty.
func (s *Service) fetchWindow(ctx context.Context, w domain.TimeWindow) ([]domain.Item, error) {
	items, err := s.items.FetchItemsInWindow(ctx, w)
	if errors.Is(err, domain.ErrLookup) {
		slog.WarnContext(ctx, "item collection not found, reporting empty",
			slog.String("window_start", w.Start.Format(time.RFC3339)),
			slog.String("window_end", w.End.Format(time.RFC3339)),
		)
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch items",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	slog.DebugContext(ctx, "fetched items",
		slog.Int("count", len(items)),
	)

	return items, nil
}

type finishFunc func(itemCount int, counts map[string]int, err error)

func (s *Service) begin(ctx context.Context, kind string, w domain.TimeWindow) (context.Context, finishFunc) {
	startedAt := time.Now()
	ctx, span := tracing.StartReportSpan(ctx, kind, w.Start, w.End)

	return ctx, func(itemCount int, counts map[string]int, err error) {
		defer span.End()
		tracing.RecordReportResult(span, itemCount, err)

		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		if s.analysisMetrics != nil {
			s.analysisMetrics.RecordReportBuilt(ctx, kind, outcome)
			s.analysisMetrics.RecordItemsAnalyzed(ctx, kind, itemCount)
			s.analysisMetrics.RecordReportDuration(ctx, kind, time.Since(startedAt))
		}

		if err != nil || s.recorder == nil {
			return
		}

		record := domain.ReportRecord{
			Kind:        kind,
			GeneratedAt: time.Now(),
			WindowStart: w.Start,
			WindowEnd:   w.End,
			ItemCount:   itemCount,
			Counts:      counts,
		}
		if recErr := s.recorder.RecordReport(ctx, record); recErr != nil {
			slog.WarnContext(ctx, "failed to record report",
				slog.String("event", "report.record.fail"),
				slog.String("kind", kind),
				slog.String("error", recErr.Error()),
			)
		}
	}
}
