package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/focus"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/idempotency"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/window"
)

const idempotencyScope = "tasks"

type NewTaskInput struct {
	Name      string
	Date      string
	Time      string
	DueDate   string
	DueTime   string
	Category  string
	Priority  string
	Status    string
	Alignment string
	RelatedID string
}

type TodayResponse struct {
	Date   string            `json:"date"`
	Window domain.TimeWindow `json:"window"`
	Items  []domain.Item     `json:"items"`
}

type Service struct {
	items      domain.ItemRepository
	calculator *window.Calculator
	guard      *idempotency.Guard
}

func NewService(items domain.ItemRepository, calculator *window.Calculator, guard *idempotency.Guard) *Service {
	return &Service{
		items:      items,
		calculator: calculator,
		guard:      guard,
	}
}

func (s *Service) Create(ctx context.Context, requestKey string, in NewTaskInput) (*domain.Item, error) {
	newItem, err := s.toNewItem(in)
	if err != nil {
		return nil, err
	}

	release, err := s.guard.Claim(ctx, idempotencyScope, requestKey)
	if err != nil {
		return nil, err
	}

	item, err := s.items.CreateItem(ctx, newItem)
	if err != nil {
		release()
		slog.ErrorContext(ctx, "failed to create item",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	slog.InfoContext(ctx, "item created",
		slog.String("item_id", item.ID),
		slog.Bool("has_do", newItem.DoStart != nil),
		slog.Bool("has_due", newItem.DueStart != nil),
	)

	return item, nil
}

func (s *Service) toNewItem(in NewTaskInput) (domain.NewItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewItem{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	priority := domain.ParsePriority(in.Priority)
	if priority == domain.PriorityUnset && strings.TrimSpace(in.Priority) != "" {
		return domain.NewItem{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, in.Priority)
	}

	status := domain.StatusNotStarted
	if strings.TrimSpace(in.Status) != "" {
		status = domain.ParseStatus(in.Status)
		if status == domain.StatusUnset {
			return domain.NewItem{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
		}
	}

	doStart, err := s.optionalLocal(in.Date, in.Time)
	if err != nil {
		return domain.NewItem{}, fmt.Errorf("do date: %w", err)
	}
	dueStart, err := s.optionalLocal(in.DueDate, in.DueTime)
	if err != nil {
		return domain.NewItem{}, fmt.Errorf("due date: %w", err)
	}

	return domain.NewItem{
		Name:      name,
		Status:    status,
		Category:  strings.TrimSpace(in.Category),
		Priority:  priority,
		Alignment: strings.TrimSpace(in.Alignment),
		DoStart:   doStart,
		DueStart:  dueStart,
		RelatedID: strings.TrimSpace(in.RelatedID),
	}, nil
}

func (s *Service) optionalLocal(dateText, timeText string) (*time.Time, error) {
	if strings.TrimSpace(dateText) == "" {
		if strings.TrimSpace(timeText) != "" {
			return nil, fmt.Errorf("%w: time given without a date", domain.ErrFormat)
		}
		return nil, nil
	}

	t, err := s.calculator.ParseLocal(dateText, timeText)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, label string) error {
	status := domain.ParseStatus(label)
	if status == domain.StatusUnset {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, label)
	}

	if err := s.items.UpdateStatus(ctx, id, status); err != nil {
		slog.ErrorContext(ctx, "failed to update item status",
			slog.String("item_id", id),
			slog.String("status", status.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	slog.InfoContext(ctx, "item status updated",
		slog.String("item_id", id),
		slog.String("status", status.String()),
	)

	return nil
}

// Today lists the items of ref's local day in focus order.
func (s *Service) Today(ctx context.Context, ref time.Time) (*TodayResponse, error) {
	w, date := s.calculator.TodayWindow(ref)

	items, err := s.items.FetchItemsInWindow(ctx, w)
	if errors.Is(err, domain.ErrLookup) {
		items, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	sorted := focus.SortItems(items)

	return &TodayResponse{
		Date:   date.String(),
		Window: w,
		Items:  sorted,
	}, nil
}
