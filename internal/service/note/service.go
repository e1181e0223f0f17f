package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/idempotency"
)

const (
	idempotencyScope = "notes"
	defaultSource    = "api"
)

var ErrSheetDisabled = errors.New("notes sheet is not configured")

// Header is the first row of the notes sheet.
var Header = []string{"Timestamp", "Title", "Body", "Tags", "Source"}

type Note struct {
	Title  string
	Body   string
	Source string
	Tags   []string
}

type AppendResponse struct {
	Timestamp string   `json:"timestamp"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	Source    string   `json:"source"`
}

type Service struct {
	sheet domain.NoteSheet
	loc   *time.Location
	guard *idempotency.Guard
}

func NewService(sheet domain.NoteSheet, loc *time.Location, guard *idempotency.Guard) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		sheet: sheet,
		loc:   loc,
		guard: guard,
	}
}

func (s *Service) Append(ctx context.Context, requestKey string, n Note, at time.Time) (*AppendResponse, error) {
	if s.sheet == nil {
		return nil, ErrSheetDisabled
	}

	title := strings.TrimSpace(n.Title)
	body := strings.TrimSpace(n.Body)
	if title == "" && body == "" {
		return nil, fmt.Errorf("%w: title or body is required", domain.ErrInvalidInput)
	}

	source := strings.TrimSpace(n.Source)
	if source == "" {
		source = defaultSource
	}

	release, err := s.guard.Claim(ctx, idempotencyScope, requestKey)
	if err != nil {
		return nil, err
	}

	tags := Tags(title+" "+body, n.Tags)
	timestamp := at.In(s.loc).Format(time.RFC3339)

	if err := s.sheet.EnsureHeader(ctx, Header); err != nil {
		release()
		slog.ErrorContext(ctx, "failed to ensure notes header",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	row := []string{timestamp, title, body, strings.Join(tags, ", "), source}
	if err := s.sheet.AppendRow(ctx, row); err != nil {
		release()
		slog.ErrorContext(ctx, "failed to append note",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	slog.InfoContext(ctx, "note appended",
		slog.Int("tag_count", len(tags)),
		slog.String("source", source),
	)

	return &AppendResponse{
		Timestamp: timestamp,
		Title:     title,
		Tags:      tags,
		Source:    source,
	}, nil
}
