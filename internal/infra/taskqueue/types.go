package taskqueue

import (
	"fmt"
	"strings"
	"time"
)

type ReminderTask struct {
	ScheduleAt time.Time `json:"-"`

	ItemID      string    `json:"item_id"`
	Name        string    `json:"name"`
	DisplayLine string    `json:"display_line"`
	NextAction  string    `json:"next_action"`
	StartsAt    time.Time `json:"starts_at"`
}

// TaskID is stable for an item and start instant, so the queue itself also
// rejects a second registration.
func (t *ReminderTask) TaskID() string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, t.ItemID)
	return fmt.Sprintf("reminder-%s-%d", id, t.StartsAt.Unix())
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
