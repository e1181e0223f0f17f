package focus

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/coach"
)

const (
	// GapThreshold is the minimum idle time between timed items reported as a gap.
	GapThreshold = 60 * time.Minute

	maxGapSuggestions = 2
)

type Gap struct {
	Window      string   `json:"window"`
	Suggestions []string `json:"suggestions"`
}

type StatusMix struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

type Tally struct {
	Total        int       `json:"total"`
	HighPriority int       `json:"high_priority"`
	WithDue      int       `json:"with_due"`
	WithDo       int       `json:"with_do"`
	StatusMix    StatusMix `json:"status_mix"`
}

type Report struct {
	Overdue   []coach.Line `json:"overdue"`
	Scheduled []coach.Line `json:"scheduled"`
	Gaps      []Gap        `json:"gaps"`
	Tally     Tally        `json:"tally"`
}

// SortItems returns a stably sorted copy ordered by priority rank, then
// primary instant with untimed items last, then status rank.
func SortItems(items []domain.Item) []domain.Item {
	sorted := make([]domain.Item, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if pa, pb := a.Priority.Rank(), b.Priority.Rank(); pa != pb {
			return pa < pb
		}

		ta, okA := a.PrimaryInstant()
		tb, okB := b.PrimaryInstant()
		switch {
		case okA && !okB:
			return true
		case !okA && okB:
			return false
		case okA && okB && !ta.Equal(tb):
			return ta.Before(tb)
		}

		return a.Status.Rank() < b.Status.Rank()
	})

	return sorted
}

type timedItem struct {
	item    domain.Item
	instant time.Time
}

// Build produces the daily focus report for items relative to ref.
func Build(items []domain.Item, ref time.Time, formatter *coach.Formatter) Report {
	report := Report{
		Overdue:   []coach.Line{},
		Scheduled: []coach.Line{},
		Gaps:      []Gap{},
	}

	sorted := SortItems(items)
	var upcoming []timedItem

	for _, item := range sorted {
		instant, ok := item.PrimaryInstant()
		if !ok {
			report.Scheduled = append(report.Scheduled, formatter.BuildLine(item, coach.WhichDo, ref))
			continue
		}

		line := formatter.BuildLine(item, primaryWhich(item), ref)
		if instant.Before(ref) {
			report.Overdue = append(report.Overdue, line)
			continue
		}

		report.Scheduled = append(report.Scheduled, line)
		upcoming = append(upcoming, timedItem{item: item, instant: instant})
	}

	report.Gaps = findGaps(upcoming, suggestions(sorted), formatter.Location())
	report.Tally = tally(sorted)

	return report
}

func primaryWhich(item domain.Item) coach.Which {
	if item.DoWindow != nil {
		return coach.WhichDo
	}
	return coach.WhichDue
}

func findGaps(timed []timedItem, suggested []string, loc *time.Location) []Gap {
	gaps := []Gap{}
	if len(timed) < 2 {
		return gaps
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].instant.Before(timed[j].instant)
	})

	for i := 1; i < len(timed); i++ {
		from, to := timed[i-1].instant, timed[i].instant
		if to.Sub(from) < GapThreshold {
			continue
		}

		names := make([]string, len(suggested))
		copy(names, suggested)

		gaps = append(gaps, Gap{
			Window:      from.In(loc).Format("15:04") + "–" + to.In(loc).Format("15:04"),
			Suggestions: names,
		})
	}

	return gaps
}

// suggestions picks filler candidates from the whole sorted list, not from
// items that fit a particular gap.
func suggestions(sorted []domain.Item) []string {
	names := []string{}
	for _, item := range sorted {
		if len(names) == maxGapSuggestions {
			break
		}
		if item.Priority != domain.PriorityHigh {
			names = append(names, item.Name)
		}
	}
	return names
}

func tally(items []domain.Item) Tally {
	t := Tally{Total: len(items)}

	for _, item := range items {
		if item.Priority == domain.PriorityHigh {
			t.HighPriority++
		}
		if item.DueWindow != nil {
			t.WithDue++
		}
		if item.DoWindow != nil {
			t.WithDo++
		}

		switch item.Status {
		case domain.StatusNotStarted:
			t.StatusMix.NotStarted++
		case domain.StatusInProgress:
			t.StatusMix.InProgress++
		case domain.StatusDone:
			t.StatusMix.Done++
		}
	}

	return t
}
