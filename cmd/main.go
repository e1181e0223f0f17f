package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-focus-assistant/internal/config"
	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/handler"
	"github.com/KasumiMercury/primind-focus-assistant/internal/health"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/reportrecorder"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/repository"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/sheets"
	"github.com/KasumiMercury/primind-focus-assistant/internal/infra/workspace"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/logging"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/metrics"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/middleware"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/analysis"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/coach"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/idempotency"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/note"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/property"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/reminder"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/task"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("focus-assistant")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	obs.SetLevel(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.Sheets.Validate(); err != nil {
		slog.Error("sheets configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	analysisMetrics, err := metrics.NewAnalysisMetrics()
	if err != nil {
		slog.Error("failed to initialize analysis metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB locally, BigQuery on gcloud
	recorder, err := reportrecorder.NewRecorder(ctx, reportrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize report recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close report recorder", slog.String("error", err.Error()))
		}
	}()

	reminderQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	var redisClient *redis.Client
	var ledger domain.Ledger
	if cfg.Redis.Enabled() {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		ledger = repository.NewLedgerRepository(redisClient)
	} else {
		slog.Warn("REDIS_ADDR not set, idempotency keys and reminder dedupe disabled")
	}

	var noteSheet domain.NoteSheet
	if cfg.Sheets.Enabled() {
		sheetClient, err := sheets.NewClient(ctx, sheets.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			NotesRange:      cfg.Sheets.NotesRange,
			CredentialsFile: cfg.Sheets.CredentialsFile,
		})
		if err != nil {
			slog.Error("failed to initialize sheets client", slog.String("error", err.Error()))
			return 1
		}
		noteSheet = sheetClient
	} else {
		slog.Warn("SHEETS_SPREADSHEET_ID not set, notes disabled")
	}

	workspaceClient := workspace.NewClient(workspace.Config{
		BaseURL:    cfg.Workspace.BaseURL,
		Token:      cfg.Workspace.Token,
		DatabaseID: cfg.Workspace.DatabaseID,
		APIVersion: cfg.Workspace.APIVersion,
		Properties: property.Names(cfg.Workspace.Properties),
		Location:   cfg.Location,
	})

	calculator := window.NewCalculator(cfg.Location)
	formatter := coach.NewFormatter(cfg.Location)
	guard := idempotency.NewGuard(ledger, idempotency.DefaultTTL)

	analysisService := analysis.NewService(workspaceClient, calculator, formatter, recorder, analysisMetrics)
	taskService := task.NewService(workspaceClient, calculator, guard)
	noteService := note.NewService(noteSheet, cfg.Location, guard)
	reminderService := reminder.NewService(
		workspaceClient,
		calculator,
		formatter,
		reminderQueue,
		ledger,
		cfg.Reminder.Lead,
		analysisMetrics,
	)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      module,
		TracerName:  "github.com/KasumiMercury/primind-focus-assistant/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	r.Any(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.StaticToken(cfg.APIToken))
	handler.Handlers{
		Analysis: handler.NewAnalysisHandler(analysisService),
		Tasks:    handler.NewTaskHandler(taskService),
		Notes:    handler.NewNoteHandler(noteService),
		Reminder: handler.NewReminderHandler(reminderService),
	}.Register(v1)

	// h2c lets gRPC health clients connect without TLS
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("time_zone", cfg.TimeZone),
			slog.Bool("ledger_enabled", ledger != nil),
			slog.Bool("notes_enabled", noteSheet != nil),
			slog.Bool("reminders_enabled", reminderQueue != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
		slog.Int("db", cfg.DB),
	)

	return redisClient, nil
}
