//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client              *cloudtasks.Client
	projectID           string
	locationID          string
	queueID             string
	targetURL           string
	serviceAccountEmail string
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	// ServiceAccountEmail signs an OIDC token for the target when set.
	ServiceAccountEmail string
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	return &CloudTasksClient{
		client:              client,
		projectID:           cfg.ProjectID,
		locationID:          cfg.LocationID,
		queueID:             cfg.QueueID,
		targetURL:           cfg.TargetURL,
		serviceAccountEmail: cfg.ServiceAccountEmail,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder task: %w", err)
	}

	httpRequest := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        c.targetURL,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}
	if c.serviceAccountEmail != "" {
		httpRequest.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: c.serviceAccountEmail,
				Audience:            c.targetURL,
			},
		}
	}

	cloudTask := &taskspb.Task{
		Name: fmt.Sprintf("%s/tasks/%s", c.queuePath(), task.TaskID()),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: httpRequest,
		},
	}

	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	slog.DebugContext(ctx, "registering reminder to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("item_id", task.ItemID),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "reminder already registered in Cloud Tasks",
				slog.String("task_name", cloudTask.Name),
				slog.String("item_id", task.ItemID),
			)
			return &TaskResponse{
				Name:         cloudTask.Name,
				ScheduleTime: task.ScheduleAt,
			}, nil
		}

		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("item_id", task.ItemID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "reminder registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("item_id", task.ItemID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
