package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/workspace"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/analysis"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/note"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/productivity"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/reminder"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/task"
)

type fakeAnalysis struct {
	ref        time.Time
	start, end string
	err        error
}

func (f *fakeAnalysis) DailyFocus(_ context.Context, ref time.Time) (*analysis.DailyFocusResponse, error) {
	f.ref = ref
	if f.err != nil {
		return nil, f.err
	}
	return &analysis.DailyFocusResponse{Date: "2024-06-15"}, nil
}

func (f *fakeAnalysis) Weekly(_ context.Context, ref time.Time) (*analysis.PeriodResponse, error) {
	f.ref = ref
	if f.err != nil {
		return nil, f.err
	}
	return &analysis.PeriodResponse{ItemCount: 2}, nil
}

func (f *fakeAnalysis) Period(_ context.Context, start, end string, _ time.Time) (*analysis.PeriodResponse, error) {
	f.start, f.end = start, end
	if f.err != nil {
		return nil, f.err
	}
	return &analysis.PeriodResponse{ItemCount: 1}, nil
}

func (f *fakeAnalysis) Productivity(_ context.Context, from, to string) (*productivity.Report, error) {
	f.start, f.end = from, to
	if f.err != nil {
		return nil, f.err
	}
	return &productivity.Report{Total: 4, Done: 1, CompletionRate: 0.25}, nil
}

type fakeTasks struct {
	key    string
	input  task.NewTaskInput
	id     string
	status string
	err    error
}

func (f *fakeTasks) Create(_ context.Context, key string, in task.NewTaskInput) (*domain.Item, error) {
	f.key, f.input = key, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Item{ID: "page-1", Name: in.Name}, nil
}

func (f *fakeTasks) UpdateStatus(_ context.Context, id, label string) error {
	f.id, f.status = id, label
	return f.err
}

func (f *fakeTasks) Today(_ context.Context, _ time.Time) (*task.TodayResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &task.TodayResponse{Date: "2024-06-15"}, nil
}

type fakeNotes struct {
	key  string
	note note.Note
	err  error
}

func (f *fakeNotes) Append(_ context.Context, key string, n note.Note, _ time.Time) (*note.AppendResponse, error) {
	f.key, f.note = key, n
	if f.err != nil {
		return nil, f.err
	}
	return &note.AppendResponse{Title: n.Title, Source: "api"}, nil
}

type fakeReminders struct {
	err error
}

func (f *fakeReminders) ScheduleToday(_ context.Context, _ time.Time) (*reminder.ScheduleResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &reminder.ScheduleResponse{Date: "2024-06-15", Scheduled: 1}, nil
}

type fixture struct {
	analysis  *fakeAnalysis
	tasks     *fakeTasks
	notes     *fakeNotes
	reminders *fakeReminders
	router    *gin.Engine
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		analysis:  &fakeAnalysis{},
		tasks:     &fakeTasks{},
		notes:     &fakeNotes{},
		reminders: &fakeReminders{},
	}

	f.router = gin.New()
	Handlers{
		Analysis: NewAnalysisHandler(f.analysis),
		Tasks:    NewTaskHandler(f.tasks),
		Notes:    NewNoteHandler(f.notes),
		Reminder: NewReminderHandler(f.reminders),
	}.Register(f.router.Group("/api/v1"))

	return f
}

func (f *fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestDailyFocusUsesAtParameter(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/analysis/daily-focus?at=2024-06-15T09:00:00-05:00", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-06-15"`)
	assert.True(t, f.analysis.ref.Equal(time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)))
}

func TestDailyFocusRejectsBadAt(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/analysis/daily-focus?at=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"validation_error"`)
}

func TestWeekly(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/analysis/weekly", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"item_count":2`)
	assert.False(t, f.analysis.ref.IsZero())
}

func TestPeriod(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/analysis/period?start=06/01/2024&end=06/07/2024", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "06/01/2024", f.analysis.start)
	assert.Equal(t, "06/07/2024", f.analysis.end)

	w = f.do(http.MethodGet, "/api/v1/analysis/period?start=06/01/2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPeriodFormatError(t *testing.T) {
	f := newFixture()
	f.analysis.err = fmt.Errorf("start: %w", domain.ErrFormat)

	w := f.do(http.MethodGet, "/api/v1/analysis/period?start=junk&end=06/07/2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"validation_error"`)
}

func TestProductivity(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/analysis/productivity?from=2024-06-01&to=2024-06-30", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completion_rate":0.25`)

	w = f.do(http.MethodGet, "/api/v1/analysis/productivity", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/tasks",
		`{"name":"Write report","date":"6/15/2024","time":"9:30","priority":"HIGH","related_id":"goal-1"}`,
		"Idempotency-Key", "abc",
	)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"page-1"`)
	assert.Equal(t, "abc", f.tasks.key)
	assert.Equal(t, "9:30", f.tasks.input.Time)
	assert.Equal(t, "goal-1", f.tasks.input.RelatedID)
}

func TestCreateTaskRequiresName(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/tasks", `{"date":"6/15/2024"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTaskDuplicate(t *testing.T) {
	f := newFixture()
	f.tasks.err = domain.ErrDuplicateRequest

	w := f.do(http.MethodPost, "/api/v1/tasks", `{"name":"x"}`, "Idempotency-Key", "abc")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"conflict"`)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPatch, "/api/v1/tasks/page-9/status", `{"status":"Done"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "page-9", f.tasks.id)
	assert.Equal(t, "Done", f.tasks.status)
}

func TestUpdateStatusErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid status", err: fmt.Errorf("%w: %q", domain.ErrInvalidStatus, "Later"), want: http.StatusBadRequest},
		{name: "missing page", err: &workspace.APIError{StatusCode: http.StatusNotFound, Code: "object_not_found"}, want: http.StatusNotFound},
		{name: "upstream failure", err: &workspace.APIError{StatusCode: http.StatusBadGateway}, want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.tasks.err = tt.err

			w := f.do(http.MethodPatch, "/api/v1/tasks/page-9/status", `{"status":"Later"}`)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestToday(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/tasks/today", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-06-15"`)
}

func TestAppendNote(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/notes", `{"title":"Idea","body":"try a budget app","tags":["finance"]}`, "Idempotency-Key", "n-1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "n-1", f.notes.key)
	assert.Equal(t, []string{"finance"}, f.notes.note.Tags)
}

func TestAppendNoteDisabled(t *testing.T) {
	f := newFixture()
	f.notes.err = note.ErrSheetDisabled

	w := f.do(http.MethodPost, "/api/v1/notes", `{"title":"Idea"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"unavailable"`)
}

func TestScheduleReminders(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/reminders/schedule", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"scheduled":1`)

	f.reminders.err = reminder.ErrQueueDisabled
	w = f.do(http.MethodPost, "/api/v1/reminders/schedule", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
