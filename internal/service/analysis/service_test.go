package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/coach"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/window"
)

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *domain.MockItemRepository, *domain.MockReportRecorder) {
	t.Helper()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	repo := domain.NewMockItemRepository(ctrl)
	recorder := domain.NewMockReportRecorder(ctrl)

	svc := NewService(repo, window.NewCalculator(loc), coach.NewFormatter(loc), recorder, nil)
	return svc, repo, recorder
}

func TestDailyFocus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, recorder := newTestService(t, ctrl)
	ctx := context.Background()
	ref := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

	wantWindow := domain.NewTimeWindow(
		time.Date(2024, 6, 15, 5, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 4, 59, 59, 0, time.UTC),
	)

	repo.EXPECT().FetchItemsInWindow(gomock.Any(), wantWindow).Return([]domain.Item{
		{ID: "1", Name: "Morning run", DoWindow: &domain.DateRange{Start: ref.Add(-3 * time.Hour), HasTime: true}},
		{ID: "2", Name: "Call mom", Category: "Call", DoWindow: &domain.DateRange{Start: ref.Add(2 * time.Hour), HasTime: true}},
	}, nil)
	recorder.EXPECT().RecordReport(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record domain.ReportRecord) error {
			assert.Equal(t, KindDailyFocus, record.Kind)
			assert.Equal(t, 2, record.ItemCount)
			assert.Equal(t, 1, record.Counts["overdue"])
			return nil
		},
	)

	resp, err := svc.DailyFocus(ctx, ref)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-15", resp.Date)
	assert.Equal(t, wantWindow, resp.Window)
	require.Len(t, resp.Overdue, 1)
	assert.Equal(t, "1", resp.Overdue[0].ID)
	require.Len(t, resp.Scheduled, 1)
	assert.True(t, resp.Scheduled[0].SuggestReminder)
}

func TestDailyFocusLookupErrorIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, recorder := newTestService(t, ctrl)

	repo.EXPECT().FetchItemsInWindow(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(domain.ErrLookup, errors.New("database gone")))
	recorder.EXPECT().RecordReport(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := svc.DailyFocus(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Empty(t, resp.Overdue)
	assert.Empty(t, resp.Scheduled)
	assert.Zero(t, resp.Tally.Total)
}

func TestDailyFocusUpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestService(t, ctrl)
	upstream := errors.New("upstream 500")

	repo.EXPECT().FetchItemsInWindow(gomock.Any(), gomock.Any()).Return(nil, upstream)

	_, err := svc.DailyFocus(context.Background(), time.Now())
	assert.ErrorIs(t, err, upstream)
}

func TestRecorderFailureDoesNotFailReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, recorder := newTestService(t, ctrl)

	repo.EXPECT().FetchItemsInWindow(gomock.Any(), gomock.Any()).Return(nil, nil)
	recorder.EXPECT().RecordReport(gomock.Any(), gomock.Any()).Return(errors.New("influx down"))

	_, err := svc.Weekly(context.Background(), time.Now())
	assert.NoError(t, err)
}

func TestWeekly(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, recorder := newTestService(t, ctrl)
	ref := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

	repo.EXPECT().FetchItemsInWindow(gomock.Any(), domain.NewTimeWindow(
		ref,
		time.Date(2024, 6, 23, 4, 59, 59, 0, time.UTC),
	)).Return([]domain.Item{
		{Name: "Quarterly plan", Priority: domain.PriorityHigh, Alignment: "Work"},
		{Name: "Groceries", Status: domain.StatusNotStarted, DueWindow: &domain.DateRange{Start: ref.Add(time.Hour), HasTime: true}},
	}, nil)
	recorder.EXPECT().RecordReport(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := svc.Weekly(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ItemCount)
	assert.Len(t, resp.HighPriority, 1)
	assert.Len(t, resp.StrategicWins, 1)
	assert.Len(t, resp.RiskWatch, 1)
	require.Len(t, resp.AlignmentCheck, 2)
	assert.Equal(t, "Work", resp.AlignmentCheck[0].Label)
}

func TestPeriodRejectsMalformedDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestService(t, ctrl)

	_, err := svc.Period(context.Background(), "June 1", "2024-06-07", time.Now())
	assert.ErrorIs(t, err, domain.ErrFormat)

	_, err = svc.Period(context.Background(), "2024-06-07", "2024-06-01", time.Now())
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestProductivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, recorder := newTestService(t, ctrl)

	repo.EXPECT().FetchAllItems(gomock.Any()).Return([]domain.Item{
		{Status: domain.StatusDone, DoWindow: &domain.DateRange{Start: time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC), HasTime: true}},
		{Status: domain.StatusNotStarted, DoWindow: &domain.DateRange{Start: time.Date(2024, 5, 3, 15, 0, 0, 0, time.UTC), HasTime: true}},
	}, nil)
	recorder.EXPECT().RecordReport(gomock.Any(), gomock.Any()).Return(nil)

	report, err := svc.Productivity(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Done)
	assert.InDelta(t, 1.0, report.CompletionRate, 1e-9)
}

func TestProductivityLookupErrorIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, recorder := newTestService(t, ctrl)

	repo.EXPECT().FetchAllItems(gomock.Any()).Return(nil, domain.ErrLookup)
	recorder.EXPECT().RecordReport(gomock.Any(), gomock.Any()).Return(nil)

	report, err := svc.Productivity(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Zero(t, report.Total)
}
