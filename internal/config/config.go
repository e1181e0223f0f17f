package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnv     = "PORT"
	logLevelEnv = "LOG_LEVEL"
	apiTokenEnv = "ASSISTANT_API_TOKEN"
	timeZoneEnv = "ASSISTANT_TIMEZONE"

	defaultPort     = "8080"
	defaultTimeZone = "America/Chicago"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	APIToken  string
	TimeZone  string
	Location  *time.Location
	Workspace *WorkspaceConfig
	Sheets    *SheetsConfig
	Redis     *RedisConfig
	Reminder  *ReminderConfig
	TaskQueue TaskQueueConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	GCloudServiceAccountEmail string
}

func Load() (*Config, error) {
	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	timeZone := os.Getenv(timeZoneEnv)
	if timeZone == "" {
		timeZone = defaultTimeZone
	}

	location, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimeZone, timeZone, err)
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	reminderConfig, err := LoadReminderConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:      port,
		LogLevel:  parseLogLevel(os.Getenv(logLevelEnv)),
		APIToken:  os.Getenv(apiTokenEnv),
		TimeZone:  timeZone,
		Location:  location,
		Workspace: LoadWorkspaceConfig(),
		Sheets:    LoadSheetsConfig(),
		Redis:     redisConfig,
		Reminder:  reminderConfig,
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			GCloudServiceAccountEmail: os.Getenv("GCLOUD_TASKS_SERVICE_ACCOUNT"),
		},
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func positiveIntEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return parsed, nil
}
