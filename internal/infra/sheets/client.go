package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/tracing"
)

const valueInputRaw = "RAW"

type Config struct {
	SpreadsheetID   string
	NotesRange      string
	CredentialsFile string
}

// Client appends note rows to one range of a spreadsheet. It implements
// domain.NoteSheet.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	notesRange    string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	httpClient, err := newHTTPClient(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewClientWithService(svc, cfg.SpreadsheetID, cfg.NotesRange), nil
}

func NewClientWithService(svc *sheetsapi.Service, spreadsheetID, notesRange string) *Client {
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		notesRange:    notesRange,
	}
}

var _ domain.NoteSheet = (*Client)(nil)

// headerRange is the first row of the notes sheet, e.g. Notes!1:1.
func (c *Client) headerRange() string {
	sheet, _, found := strings.Cut(c.notesRange, "!")
	if !found {
		return "1:1"
	}
	return sheet + "!1:1"
}

func (c *Client) EnsureHeader(ctx context.Context, header []string) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "sheets_get_header", c.headerRange())
	defer span.End()

	existing, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.headerRange()).Context(ctx).Do()
	if err != nil {
		err = wrapError(err)
		tracing.RecordResult(span, err)
		return fmt.Errorf("failed to read header row: %w", err)
	}

	if len(existing.Values) > 0 && len(existing.Values[0]) > 0 {
		tracing.RecordResult(span, nil)
		return nil
	}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.headerRange(), &sheetsapi.ValueRange{
		Values: [][]any{toCells(header)},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		err = wrapError(err)
		tracing.RecordResult(span, err)
		return fmt.Errorf("failed to write header row: %w", err)
	}

	slog.InfoContext(ctx, "notes header written",
		slog.String("range", c.headerRange()),
	)

	tracing.RecordResult(span, nil)
	return nil
}

func (c *Client) AppendRow(ctx context.Context, row []string) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "sheets_append", c.notesRange)
	defer span.End()

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.notesRange, &sheetsapi.ValueRange{
		Values: [][]any{toCells(row)},
	}).ValueInputOption(valueInputRaw).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		err = wrapError(err)
		tracing.RecordResult(span, err)
		return fmt.Errorf("failed to append row: %w", err)
	}

	tracing.RecordResult(span, nil)
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// wrapError maps a missing spreadsheet or range to domain.ErrLookup.
func wrapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return errors.Join(domain.ErrLookup, err)
	}
	return err
}
