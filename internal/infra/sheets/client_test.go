package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	return NewClientWithService(svc, "sheet-1", "Notes!A:E")
}

func TestEnsureHeaderWritesWhenEmpty(t *testing.T) {
	var updated sheetsapi.ValueRange
	methods := []string{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		assert.True(t, strings.Contains(r.URL.Path, "/v4/spreadsheets/sheet-1/values/Notes!1:1"), r.URL.Path)

		if r.Method == http.MethodPut {
			assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&updated))
		}
		_, _ = w.Write([]byte(`{"range":"Notes!1:1"}`))
	})

	require.NoError(t, client.EnsureHeader(context.Background(), []string{"Timestamp", "Title"}))

	assert.Equal(t, []string{http.MethodGet, http.MethodPut}, methods)
	require.Len(t, updated.Values, 1)
	assert.Equal(t, []any{"Timestamp", "Title"}, updated.Values[0])
}

func TestEnsureHeaderSkipsExisting(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"range":"Notes!1:1","values":[["Timestamp","Title"]]}`))
	})

	require.NoError(t, client.EnsureHeader(context.Background(), []string{"Timestamp", "Title"}))
	assert.Equal(t, 1, calls)
}

func TestAppendRow(t *testing.T) {
	var appended sheetsapi.ValueRange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/values/Notes!A:E:append"), r.URL.Path)
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&appended))
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, client.AppendRow(context.Background(), []string{"2024-06-15T13:00:00-05:00", "Title"}))
	require.Len(t, appended.Values, 1)
	assert.Equal(t, []any{"2024-06-15T13:00:00-05:00", "Title"}, appended.Values[0])
}

func TestAppendRowNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found."}}`))
	})

	err := client.AppendRow(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, domain.ErrLookup)
}

func TestHeaderRange(t *testing.T) {
	assert.Equal(t, "Notes!1:1", (&Client{notesRange: "Notes!A:E"}).headerRange())
	assert.Equal(t, "1:1", (&Client{notesRange: "A:E"}).headerRange())
}
