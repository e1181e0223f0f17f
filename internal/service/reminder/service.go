package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/metrics"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/tracing"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/coach"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/focus"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/window"
)

const (
	DefaultLead = 10 * time.Minute

	// claimGrace keeps a ledger claim alive past the item start.
	claimGrace = 24 * time.Hour
)

var ErrQueueDisabled = errors.New("reminder queue is not configured")

type Outcome string

const (
	OutcomeScheduled Outcome = "scheduled"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

type Result struct {
	ItemID   string    `json:"item_id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	RemindAt time.Time `json:"remind_at"`
	Outcome  Outcome   `json:"outcome"`
	TaskName string    `json:"task_name,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

type ScheduleResponse struct {
	Date      string   `json:"date"`
	Scheduled int      `json:"scheduled"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

type Service struct {
	items           domain.ItemRepository
	calculator      *window.Calculator
	formatter       *coach.Formatter
	queue           taskqueue.ReminderQueue
	ledger          domain.Ledger
	lead            time.Duration
	analysisMetrics *metrics.AnalysisMetrics
}

// NewService builds the scheduler. queue and ledger may be nil; without a
// ledger repeated calls rely on the queue rejecting duplicate task ids.
func NewService(
	items domain.ItemRepository,
	calculator *window.Calculator,
	formatter *coach.Formatter,
	queue taskqueue.ReminderQueue,
	ledger domain.Ledger,
	lead time.Duration,
	analysisMetrics *metrics.AnalysisMetrics,
) *Service {
	if lead <= 0 {
		lead = DefaultLead
	}
	return &Service{
		items:           items,
		calculator:      calculator,
		formatter:       formatter,
		queue:           queue,
		ledger:          ledger,
		lead:            lead,
		analysisMetrics: analysisMetrics,
	}
}

func LedgerKey(itemID string, startsAt time.Time) string {
	return fmt.Sprintf("reminder:%s:%d", itemID, startsAt.Unix())
}

// ScheduleToday registers a reminder for each upcoming timed item of ref's
// local day that is not done. Each registration is attempted once.
func (s *Service) ScheduleToday(ctx context.Context, ref time.Time) (*ScheduleResponse, error) {
	if s.queue == nil {
		return nil, ErrQueueDisabled
	}

	w, date := s.calculator.TodayWindow(ref)

	items, err := s.items.FetchItemsInWindow(ctx, w)
	if errors.Is(err, domain.ErrLookup) {
		items, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	report := focus.Build(items, ref, s.formatter)
	resp := &ScheduleResponse{
		Date:    date.String(),
		Results: []Result{},
	}

	for _, line := range report.Scheduled {
		item, ok := byID[line.ID]
		if !ok || !line.SuggestReminder || !eligible(item) {
			continue
		}

		result := s.schedule(ctx, item, line, ref)
		switch result.Outcome {
		case OutcomeScheduled:
			resp.Scheduled++
		case OutcomeSkipped:
			resp.Skipped++
		case OutcomeFailed:
			resp.Failed++
		}
		if s.analysisMetrics != nil {
			s.analysisMetrics.RecordReminder(ctx, string(result.Outcome))
		}
		resp.Results = append(resp.Results, result)
	}

	slog.InfoContext(ctx, "reminders processed",
		slog.String("date", resp.Date),
		slog.Int("scheduled", resp.Scheduled),
		slog.Int("skipped", resp.Skipped),
		slog.Int("failed", resp.Failed),
	)

	return resp, nil
}

func eligible(item domain.Item) bool {
	if item.Status == domain.StatusDone {
		return false
	}
	r := item.PrimaryRange()
	return r != nil && r.HasTime
}

func (s *Service) schedule(ctx context.Context, item domain.Item, line coach.Line, ref time.Time) Result {
	startsAt, _ := item.PrimaryInstant()
	remindAt := startsAt.Add(-s.lead)
	if remindAt.Before(ref) {
		remindAt = ref
	}

	result := Result{
		ItemID:   item.ID,
		Name:     item.Name,
		StartsAt: startsAt,
		RemindAt: remindAt,
	}

	ctx, span := tracing.StartReminderSpan(ctx, item.ID, remindAt)
	defer span.End()

	key := LedgerKey(item.ID, startsAt)
	if s.ledger != nil {
		claimed, err := s.ledger.Claim(ctx, key, startsAt.Sub(ref)+claimGrace)
		if err != nil {
			slog.WarnContext(ctx, "failed to claim reminder",
				slog.String("event", "reminder.claim.fail"),
				slog.String("item_id", item.ID),
				slog.String("error", err.Error()),
			)
			tracing.RecordResult(span, err)
			result.Outcome = OutcomeFailed
			result.Reason = err.Error()
			return result
		}
		if !claimed {
			result.Outcome = OutcomeSkipped
			result.Reason = "already scheduled"
			return result
		}
	}

	resp, err := s.queue.RegisterReminder(ctx, &taskqueue.ReminderTask{
		ScheduleAt:  remindAt,
		ItemID:      item.ID,
		Name:        item.Name,
		DisplayLine: line.DisplayLine,
		NextAction:  line.NextAction,
		StartsAt:    startsAt,
	})
	if err != nil {
		if s.ledger != nil {
			if relErr := s.ledger.Release(ctx, key); relErr != nil {
				slog.WarnContext(ctx, "failed to release reminder claim",
					slog.String("event", "reminder.release.fail"),
					slog.String("item_id", item.ID),
					slog.String("error", relErr.Error()),
				)
			}
		}
		slog.ErrorContext(ctx, "failed to register reminder",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()),
		)
		tracing.RecordResult(span, err)
		result.Outcome = OutcomeFailed
		result.Reason = err.Error()
		return result
	}

	tracing.RecordResult(span, nil)
	result.Outcome = OutcomeScheduled
	result.TaskName = resp.Name
	return result
}
