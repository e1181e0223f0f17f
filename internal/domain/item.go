package domain

import (
	"strings"
	"time"
)

// UntitledName is used when an item has no title.
const UntitledName = "Untitled"

type Status string

const (
	StatusUnset      Status = ""
	StatusNotStarted Status = "Not started"
	StatusInProgress Status = "In progress"
	StatusDone       Status = "Done"
)

// ParseStatus normalizes a status label. Unknown labels map to StatusUnset.
func ParseStatus(label string) Status {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "not started":
		return StatusNotStarted
	case "in progress":
		return StatusInProgress
	case "done":
		return StatusDone
	default:
		return StatusUnset
	}
}

func (s Status) String() string {
	return string(s)
}

// Rank is the sort rank: Not started=1, In progress=2, Done=3, unset=4.
func (s Status) Rank() int {
	switch s {
	case StatusNotStarted:
		return 1
	case StatusInProgress:
		return 2
	case StatusDone:
		return 3
	default:
		return 4
	}
}

type Priority string

const (
	PriorityUnset Priority = ""
	PriorityHigh  Priority = "HIGH"
	PriorityMid   Priority = "MID"
	PriorityLow   Priority = "LOW"
)

// ParsePriority normalizes a priority label. Unknown labels map to PriorityUnset.
func ParsePriority(label string) Priority {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "HIGH":
		return PriorityHigh
	case "MID", "MEDIUM":
		return PriorityMid
	case "LOW":
		return PriorityLow
	default:
		return PriorityUnset
	}
}

func (p Priority) String() string {
	return string(p)
}

// Rank is the sort rank: HIGH=1, MID=2, LOW=3, unset=4.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMid:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// DateRange is a do or due window as stored on a workspace item.
// Date-only values have HasTime=false and Start at civil midnight.
type DateRange struct {
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"`
	TimeZone string     `json:"time_zone,omitempty"`
	HasTime  bool       `json:"has_time"`
}

// Item is a read-only view of a remote task record.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     Status     `json:"status,omitempty"`
	Category   string     `json:"category,omitempty"`
	Priority   Priority   `json:"priority,omitempty"`
	Alignment  string     `json:"alignment,omitempty"`
	DoWindow   *DateRange `json:"do,omitempty"`
	DueWindow  *DateRange `json:"due,omitempty"`
	RelatedIDs []string   `json:"related_ids,omitempty"`
}

// PrimaryInstant returns the do start, else the due start.
func (i Item) PrimaryInstant() (time.Time, bool) {
	if i.DoWindow != nil {
		return i.DoWindow.Start, true
	}
	if i.DueWindow != nil {
		return i.DueWindow.Start, true
	}
	return time.Time{}, false
}

// PrimaryRange returns the window backing PrimaryInstant.
func (i Item) PrimaryRange() *DateRange {
	if i.DoWindow != nil {
		return i.DoWindow
	}
	return i.DueWindow
}

func (i Item) RelatedID() string {
	if len(i.RelatedIDs) == 0 {
		return ""
	}
	return i.RelatedIDs[0]
}

// NewItem carries the fields for creating a workspace item.
type NewItem struct {
	Name      string
	Status    Status
	Category  string
	Priority  Priority
	Alignment string
	DoStart   *time.Time
	DueStart  *time.Time
	RelatedID string
}
