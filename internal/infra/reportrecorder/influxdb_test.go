//go:build !gcloud

package reportrecorder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

func TestNewRecorderFallsBackToNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "disabled", cfg: &Config{Disabled: true, InfluxDBToken: "t", InfluxDBOrg: "o"}},
		{name: "missing token", cfg: &Config{InfluxDBOrg: "o"}},
		{name: "missing org", cfg: &Config{InfluxDBToken: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, err := NewRecorder(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.IsType(t, &noopRecorder{}, recorder)
			assert.NoError(t, recorder.RecordReport(context.Background(), domain.ReportRecord{Kind: "weekly"}))
			assert.NoError(t, recorder.Close())
		})
	}
}

func TestInfluxDBRecorderWritesPoint(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/write" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "focus", r.URL.Query().Get("bucket"))
		assert.Equal(t, "home", r.URL.Query().Get("org"))
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		body = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	recorder, err := NewRecorder(context.Background(), &Config{
		InfluxDBURL:    server.URL,
		InfluxDBToken:  "token",
		InfluxDBOrg:    "home",
		InfluxDBBucket: "focus",
	})
	require.NoError(t, err)
	defer recorder.Close()

	generated := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	err = recorder.RecordReport(context.Background(), domain.ReportRecord{
		Kind:        "daily_focus",
		GeneratedAt: generated,
		WindowStart: generated.Add(-12 * time.Hour),
		WindowEnd:   generated.Add(12 * time.Hour),
		ItemCount:   3,
		Counts:      map[string]int{"high_priority": 1},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "report_run,kind=daily_focus "), body)
	assert.Contains(t, body, "item_count=3i")
	assert.Contains(t, body, "count_high_priority=1i")
}

func TestInfluxDBRecorderReturnsWriteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"unauthorized access"}`))
	}))
	defer server.Close()

	recorder, err := NewRecorder(context.Background(), &Config{
		InfluxDBURL:    server.URL,
		InfluxDBToken:  "bad",
		InfluxDBOrg:    "home",
		InfluxDBBucket: "focus",
	})
	require.NoError(t, err)
	defer recorder.Close()

	err = recorder.RecordReport(context.Background(), domain.ReportRecord{Kind: "weekly", GeneratedAt: time.Now()})
	assert.Error(t, err)
}
