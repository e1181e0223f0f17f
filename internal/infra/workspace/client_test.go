package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/property"
	"github.com/KasumiMercury/primind-focus-assistant/internal/testutil"
)

var testNames = property.Names{
	Name:      "Name",
	Status:    "Status",
	Category:  "Type",
	Priority:  "Priority",
	Alignment: "Alignment",
	Do:        "Do Date",
	Due:       "Due Date",
	Related:   "Related",
}

func chicago(t *testing.T) *time.Location {
	t.Helper()
	return testutil.Location(t, testutil.DefaultZone)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:    server.URL + "/",
		Token:      "secret-token",
		DatabaseID: "db-1",
		APIVersion: "2022-06-28",
		Properties: testNames,
		Location:   chicago(t),
	})
}

const pageOneJSON = `{
  "results": [
    {
      "id": "page-1",
      "properties": {
        "Name": {"type": "title", "title": [{"plain_text": "Call "}, {"plain_text": "plumber"}]},
        "Status": {"type": "status", "status": {"name": "Not started"}},
        "Type": {"type": "select", "select": {"name": "Call"}},
        "Priority": {"type": "select", "select": null},
        "Do Date": {"type": "date", "date": {"start": "2024-06-15T14:30:00.000-05:00", "end": null, "time_zone": null}},
        "Related": {"type": "relation", "relation": [{"id": "proj-1"}]},
        "Tags": {"type": "multi_select", "multi_select": [{"name": "x"}]}
      }
    },
    {
      "id": "page-out-of-window",
      "properties": {
        "Name": {"type": "title", "title": [{"plain_text": "Next month"}]},
        "Due Date": {"type": "date", "date": {"start": "2024-07-15"}}
      }
    }
  ],
  "has_more": true,
  "next_cursor": "cursor-2"
}`

const pageTwoJSON = `{
  "results": [
    {
      "id": "page-2",
      "properties": {
        "Name": {"type": "title", "title": []},
        "Due Date": {"type": "date", "date": {"start": "2024-06-15"}}
      }
    }
  ],
  "has_more": false,
  "next_cursor": null
}`

func TestFetchItemsInWindow(t *testing.T) {
	var requests []queryRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get(versionHeader))

		var req queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		if req.StartCursor == "" {
			_, _ = w.Write([]byte(pageOneJSON))
			return
		}
		_, _ = w.Write([]byte(pageTwoJSON))
	})

	window := domain.NewTimeWindow(
		time.Date(2024, 6, 15, 5, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 4, 59, 59, 0, time.UTC),
	)

	items, err := client.FetchItemsInWindow(context.Background(), window)
	require.NoError(t, err)

	require.Len(t, requests, 2)
	assert.Equal(t, "cursor-2", requests[1].StartCursor)
	assert.Contains(t, requests[0].Filter, "or")

	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "page-1", first.ID)
	assert.Equal(t, "Call plumber", first.Name)
	assert.Equal(t, domain.StatusNotStarted, first.Status)
	assert.Equal(t, "Call", first.Category)
	assert.Equal(t, domain.PriorityUnset, first.Priority)
	assert.Equal(t, []string{"proj-1"}, first.RelatedIDs)
	require.NotNil(t, first.DoWindow)
	assert.True(t, first.DoWindow.HasTime)
	assert.True(t, first.DoWindow.Start.Equal(time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC)))

	second := items[1]
	assert.Equal(t, domain.UntitledName, second.Name)
	require.NotNil(t, second.DueWindow)
	assert.False(t, second.DueWindow.HasTime)
	assert.True(t, second.DueWindow.Start.Equal(time.Date(2024, 6, 15, 5, 0, 0, 0, time.UTC)))
}

func TestFetchAllItemsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"Could not find database"}`))
	})

	_, err := client.FetchAllItems(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLookup)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "object_not_found", apiErr.Code)
}

func TestFetchAllItemsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchAllItems(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, errors.Is(err, domain.ErrLookup))
}

func TestCreateItem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages", r.URL.Path)

		var req createPageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "db-1", req.Parent.DatabaseID)
		assert.Equal(t, "Renew passport", req.Properties["Name"].Title[0].Text.Content)
		assert.Equal(t, "HIGH", req.Properties["Priority"].Select.Name)
		assert.Equal(t, "2024-06-20T09:00:00-05:00", req.Properties["Due Date"].Date.Start)
		assert.NotContains(t, req.Properties, "Do Date")

		_, _ = w.Write([]byte(`{
  "id": "new-page",
  "properties": {
    "Name": {"type": "title", "title": [{"plain_text": "Renew passport"}]},
    "Priority": {"type": "select", "select": {"name": "HIGH"}},
    "Due Date": {"type": "date", "date": {"start": "2024-06-20T09:00:00.000-05:00"}}
  }
}`))
	})

	due := time.Date(2024, 6, 20, 14, 0, 0, 0, time.UTC)
	item, err := client.CreateItem(context.Background(), domain.NewItem{
		Name:     "Renew passport",
		Priority: domain.PriorityHigh,
		DueStart: &due,
	})
	require.NoError(t, err)

	assert.Equal(t, "new-page", item.ID)
	assert.Equal(t, domain.PriorityHigh, item.Priority)
	require.NotNil(t, item.DueWindow)
	assert.True(t, item.DueWindow.Start.Equal(due))
}

func TestUpdateStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/pages/page-9", r.URL.Path)

		var req updatePageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Done", req.Properties["Status"].Status.Name)

		_, _ = w.Write([]byte(`{"id":"page-9"}`))
	})

	require.NoError(t, client.UpdateStatus(context.Background(), "page-9", domain.StatusDone))
}

func TestParseDate(t *testing.T) {
	loc := chicago(t)

	tests := []struct {
		name        string
		input       string
		want        time.Time
		wantHasTime bool
		wantErr     bool
	}{
		{name: "date only", input: "2024-06-15", want: time.Date(2024, 6, 15, 5, 0, 0, 0, time.UTC)},
		{name: "offset timestamp", input: "2024-06-15T09:00:00.000+00:00", want: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), wantHasTime: true},
		{name: "local timestamp", input: "2024-06-15T09:00:00.000", want: time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC), wantHasTime: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hasTime, err := parseDate(tt.input, loc)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.wantHasTime, hasTime)
		})
	}
}

func TestDecodeDateRangeUsesPropertyZone(t *testing.T) {
	zone := "Asia/Tokyo"
	end := "2024-06-15T11:00:00.000"

	r, err := decodeDateRange(dateValue{Start: "2024-06-15T10:00:00.000", End: &end, TimeZone: &zone}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", r.TimeZone)
	assert.True(t, r.Start.Equal(time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)))
	require.NotNil(t, r.End)
	assert.Equal(t, time.Hour, r.End.Sub(r.Start))
}
