package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"stridehq.app/backend/common/id"
	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/common/otel"
	"stridehq.app/backend/core/config"
	"stridehq.app/backend/core/db"
	"stridehq.app/backend/internal/jobs"
	"stridehq.app/backend/internal/queue"
	"stridehq.app/backend/internal/scheduler"
	"stridehq.app/backend/internal/service"
	"stridehq.app/backend/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeScheduler)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "stride scheduler starting",
		"env", cfg.Env,
		"timezone", cfg.Timezone)

	// Initialize snowflake ID generator (the mail worker uses a different node ID)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	// Initialize Redis
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "email_stream", cfg.Redis.EmailStream)

	// Wire the gateways
	stores := store.NewStores(database.Pool())
	txRunner := service.NewTxRunner(database)
	producer := queue.NewRedisProducer(redisClient, cfg.Redis.EmailStream, slog.Default())
	pusher := service.NewRedisPusher(redisClient)
	notifier := service.NewNotificationService(stores.Notifications(), pusher, producer)

	loc := cfg.Location()

	// Register the reconciliation jobs
	sched := scheduler.New(loc)
	all := []jobs.Job{
		jobs.NewMeetingStatusJob(txRunner, cfg.Jobs.MeetingStatusSchedule),
		jobs.NewTaskOverdueJob(txRunner, cfg.Jobs.TaskOverdueSchedule),
		jobs.NewProjectStatusJob(txRunner, stores, notifier,
			cfg.Jobs.ProjectStatusSchedule, cfg.Jobs.DeadlineHorizon),
		jobs.NewMeetingReminderJob(stores, notifier,
			cfg.Jobs.MeetingReminderSchedule, cfg.Jobs.ReminderLead, cfg.Jobs.ReminderWidth, loc),
		jobs.NewTokenCleanupJob(txRunner, cfg.Jobs.TokenCleanupSchedule),
		jobs.NewInvitationCleanupJob(txRunner,
			cfg.Jobs.InvitationCleanupSchedule, cfg.Jobs.InvitationRetention),
	}
	for _, job := range all {
		if err := sched.Register(ctx, job); err != nil {
			slog.ErrorContext(ctx, "failed to register job", "error", err, "job", job.Name())
			os.Exit(1)
		}
	}

	sched.Start()
	slog.InfoContext(ctx, "scheduler running", "jobs", len(all))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down scheduler...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "shutdown timeout exceeded", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(ctx, "telemetry shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "scheduler shutdown complete")
}

const banner = `
███████╗████████╗██████╗ ██╗██████╗ ███████╗
██╔════╝╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝
███████╗   ██║   ██████╔╝██║██║  ██║█████╗
╚════██║   ██║   ██╔══██╗██║██║  ██║██╔══╝
███████║   ██║   ██║  ██║██║██████╔╝███████╗
╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝
`
