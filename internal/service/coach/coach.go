package coach

import (
	"strings"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

// Which selects the date window a line is built against.
type Which string

const (
	WhichDo  Which = "do"
	WhichDue Which = "due"
)

// Separator joins the segments of a display line.
const Separator = " — "

const (
	NoTime = "no time"

	rationaleHighPriority = "High-impact lever: moving this forward unblocks the most value today."
	rationaleEvent        = "Time-bound: this happens at a fixed time whether you are ready or not."
	rationaleCall         = "Maintains momentum: a short call keeps the relationship and the work moving."
	rationaleDefault      = "Keeps the cadence: steady progress on small items prevents a backlog."

	nextActionCall    = "Confirm the agenda and have the number or link ready."
	nextActionEvent   = "Skim the notes and gather what you need beforehand."
	nextActionDefault = "Define the first concrete step and start it."

	FixNowAction = "Block 15 minutes on the calendar and start now."

	categoryCall  = "Call"
	categoryEvent = "Event"
)

// Line is the advisory view of one item.
type Line struct {
	ID              string `json:"id"`
	DisplayLine     string `json:"display_line"`
	Rationale       string `json:"rationale"`
	NextAction      string `json:"next_action"`
	FixNowAction    string `json:"fix_now_action"`
	SuggestReminder bool   `json:"suggest_reminder"`
}

// Formatter renders items in a fixed local zone.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

func (f *Formatter) BuildLine(item domain.Item, which Which, now time.Time) Line {
	instant, ok := Instant(item, which)

	return Line{
		ID:              item.ID,
		DisplayLine:     f.displayLine(item, which),
		Rationale:       rationale(item),
		NextAction:      nextAction(item),
		FixNowAction:    FixNowAction,
		SuggestReminder: ok && instant.After(now),
	}
}

// Instant returns the start of the window selected by which.
func Instant(item domain.Item, which Which) (time.Time, bool) {
	r := window(item, which)
	if r == nil {
		return time.Time{}, false
	}
	return r.Start, true
}

func window(item domain.Item, which Which) *domain.DateRange {
	if which == WhichDue {
		return item.DueWindow
	}
	return item.DoWindow
}

func rationale(item domain.Item) string {
	switch {
	case item.Priority == domain.PriorityHigh:
		return rationaleHighPriority
	case item.Category == categoryEvent:
		return rationaleEvent
	case item.Category == categoryCall:
		return rationaleCall
	default:
		return rationaleDefault
	}
}

func nextAction(item domain.Item) string {
	switch item.Category {
	case categoryCall:
		return nextActionCall
	case categoryEvent:
		return nextActionEvent
	default:
		return nextActionDefault
	}
}

func (f *Formatter) displayLine(item domain.Item, which Which) string {
	clock := NoTime
	if r := window(item, which); r != nil && r.HasTime {
		clock = r.Start.In(f.loc).Format("15:04")
	}

	return join(
		item.Name,
		whichLabel(which)+": "+clock,
		item.Category,
		item.Alignment,
		item.Status.String(),
	)
}

// FormatItemLine is the single-line summary used by period reports. The
// schedule segment uses the primary window and is omitted for untimed items.
func (f *Formatter) FormatItemLine(item domain.Item) string {
	schedule := ""
	if r := item.PrimaryRange(); r != nil {
		label := whichLabel(WhichDo)
		if item.DoWindow == nil {
			label = whichLabel(WhichDue)
		}
		local := r.Start.In(f.loc)
		if r.HasTime {
			schedule = label + ": " + local.Format("Mon Jan 2 15:04")
		} else {
			schedule = label + ": " + local.Format("Mon Jan 2")
		}
	}

	priority := ""
	if item.Priority != domain.PriorityUnset {
		priority = "Priority: " + item.Priority.String()
	}

	return join(
		item.Name,
		schedule,
		item.Category,
		item.Alignment,
		priority,
		item.Status.String(),
	)
}

func whichLabel(which Which) string {
	if which == WhichDue {
		return "Due"
	}
	return "Do"
}

func join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, Separator)
}
