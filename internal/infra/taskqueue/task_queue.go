package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

type ReminderQueue interface {
	RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error)
}
