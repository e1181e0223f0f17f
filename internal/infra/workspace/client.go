package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/tracing"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/property"
)

const (
	pageSize = 100

	versionHeader = "Notion-Version"
)

type Config struct {
	BaseURL    string
	Token      string
	DatabaseID string
	APIVersion string
	Properties property.Names
	// Location anchors date-only and offset-less values.
	Location *time.Location
}

// Client reads and writes task pages in a workspace database. It
// implements domain.ItemRepository.
type Client struct {
	baseURL    string
	token      string
	databaseID string
	apiVersion string
	names      property.Names
	reader     *property.Reader
	loc        *time.Location
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		apiVersion: cfg.APIVersion,
		names:      cfg.Properties,
		reader:     property.NewReader(cfg.Properties),
		loc:        loc,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ domain.ItemRepository = (*Client)(nil)

func (c *Client) FetchItemsInWindow(ctx context.Context, w domain.TimeWindow) ([]domain.Item, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "query_window", c.queryURL())
	defer span.End()

	records, err := c.query(ctx, windowFilter(c.names, w))
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	items := make([]domain.Item, 0, len(records))
	for _, item := range c.reader.Items(records) {
		if inWindow(item, w) {
			items = append(items, item)
		}
	}

	tracing.RecordResult(span, nil)
	return items, nil
}

func (c *Client) FetchAllItems(ctx context.Context) ([]domain.Item, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "query_all", c.queryURL())
	defer span.End()

	records, err := c.query(ctx, nil)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	tracing.RecordResult(span, nil)
	return c.reader.Items(records), nil
}

// windowFilter matches pages whose do or due start lies in w.
func windowFilter(names property.Names, w domain.TimeWindow) map[string]any {
	between := func(prop string) map[string]any {
		return map[string]any{
			"and": []map[string]any{
				{"property": prop, "date": map[string]string{"on_or_after": w.Start.Format(time.RFC3339)}},
				{"property": prop, "date": map[string]string{"on_or_before": w.End.Format(time.RFC3339)}},
			},
		}
	}

	return map[string]any{
		"or": []map[string]any{between(names.Do), between(names.Due)},
	}
}

// inWindow re-checks the remote filter, which compares date-only values by
// calendar day rather than by instant.
func inWindow(item domain.Item, w domain.TimeWindow) bool {
	if item.DoWindow != nil && w.Contains(item.DoWindow.Start) {
		return true
	}
	return item.DueWindow != nil && w.Contains(item.DueWindow.Start)
}

func (c *Client) queryURL() string {
	return fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, c.databaseID)
}

func (c *Client) query(ctx context.Context, filter map[string]any) ([]domain.Record, error) {
	var records []domain.Record
	cursor := ""

	for {
		var resp queryResponse
		err := c.do(ctx, http.MethodPost, c.queryURL(), queryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    pageSize,
		}, &resp)
		if err != nil {
			return nil, err
		}

		for _, p := range resp.Results {
			records = append(records, decodeRecord(p, c.loc))
		}

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		cursor = *resp.NextCursor
	}

	slog.DebugContext(ctx, "queried workspace database",
		slog.Int("count", len(records)),
	)

	return records, nil
}

func (c *Client) CreateItem(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	url := fmt.Sprintf("%s/v1/pages", c.baseURL)
	ctx, span := tracing.StartExternalAPISpan(ctx, "create_page", url)
	defer span.End()

	req := createPageRequest{
		Parent:     parentRef{DatabaseID: c.databaseID},
		Properties: c.newItemProperties(item),
	}

	var created page
	if err := c.do(ctx, http.MethodPost, url, req, &created); err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	tracing.RecordResult(span, nil)
	result := c.reader.Item(decodeRecord(created, c.loc))
	return &result, nil
}

func (c *Client) newItemProperties(item domain.NewItem) map[string]propertyValue {
	props := map[string]propertyValue{
		c.names.Name: {Title: []richText{{Text: &textContent{Content: item.Name}}}},
	}

	if item.Status != domain.StatusUnset {
		props[c.names.Status] = propertyValue{Status: &option{Name: item.Status.String()}}
	}
	if item.Category != "" {
		props[c.names.Category] = propertyValue{Select: &option{Name: item.Category}}
	}
	if item.Priority != domain.PriorityUnset {
		props[c.names.Priority] = propertyValue{Select: &option{Name: item.Priority.String()}}
	}
	if item.Alignment != "" {
		props[c.names.Alignment] = propertyValue{Select: &option{Name: item.Alignment}}
	}
	if item.DoStart != nil {
		props[c.names.Do] = c.dateProperty(*item.DoStart)
	}
	if item.DueStart != nil {
		props[c.names.Due] = c.dateProperty(*item.DueStart)
	}
	if item.RelatedID != "" {
		props[c.names.Related] = propertyValue{Relation: []relationRef{{ID: item.RelatedID}}}
	}

	return props
}

func (c *Client) dateProperty(t time.Time) propertyValue {
	return propertyValue{Date: &dateValue{Start: t.In(c.loc).Format(time.RFC3339)}}
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	url := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, id)
	ctx, span := tracing.StartExternalAPISpan(ctx, "update_status", url)
	defer span.End()

	req := updatePageRequest{
		Properties: map[string]propertyValue{
			c.names.Status: {Status: &option{Name: status.String()}},
		},
	}

	err := c.do(ctx, http.MethodPatch, url, req, nil)
	tracing.RecordResult(span, err)
	return err
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set(versionHeader, c.apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to workspace",
			slog.String("method", method),
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Message
		}

		slog.ErrorContext(ctx, "unexpected status code from workspace",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status_code", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
