// cmd/worker/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/medstock-be/internal/adapters/queue"
	redis_a "github.com/ammerola/medstock-be/internal/adapters/redis_adapter"
	"github.com/ammerola/medstock-be/internal/adapters/storage"
	"github.com/ammerola/medstock-be/internal/adapters/store"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/internal/pkg/clock"
	"github.com/ammerola/medstock-be/internal/pkg/config"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
	"github.com/ammerola/medstock-be/internal/pkg/metrics"
	"github.com/ammerola/medstock-be/internal/scheduler"
	"github.com/ammerola/medstock-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat,
		slog.String("service", "medstock-worker"),
		slog.String("env", cfg.App.Environment))
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr),
		slog.String("scheduler", cfg.Scheduler.Mode))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	medicines, database, err := store.Open(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	var cache ports.CacheRepository
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddress(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slogger.Warn("redis cache unavailable", slog.String("error", err.Error()))
	} else {
		cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)
	}

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		slogger.Error("invalid scheduler timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New(true)
	clk := clock.New(loc)
	service := services.NewMedicineService(medicines, cache, clk, m, services.MedicineServiceConfig{
		ExpiryWindowDays: cfg.Analytics.ExpiryWindowDays,
		AnalyticsTTL:     cfg.Analytics.CacheTTL,
	}, slogger)

	processors := workers.Processors{
		Analytics: workers.NewAnalyticsProcessor(service, slogger),
		Excel:     workers.NewExcelProcessor(service, cfg.Uploads.Dir, slogger),
		PDF:       workers.NewPDFProcessor(service, cfg.Uploads.Dir, slogger),
		Cleanup:   workers.NewCleanupProcessor(cfg.Uploads.Dir, cfg.Uploads.RetentionPeriod, clk, slogger),
	}
	if files, err := storage.New(ctx, cfg.AWS, slogger); err != nil {
		slogger.Warn("report storage unavailable, stock reports disabled",
			slog.String("driver", cfg.AWS.StorageDriver),
			slog.String("error", err.Error()))
	} else {
		processors.Report = workers.NewReportProcessor(service, files, clk, cfg.AWS.ReportPrefix, slogger)
	}

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Asynq),
		asynq.Config{
			Concurrency:         cfg.Asynq.Concurrency,
			Queues:              cfg.Asynq.Queues,
			StrictPriority:      cfg.Asynq.StrictPriority,
			ErrorHandler:        asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:      exponentialBackoff,
			ShutdownTimeout:     cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc:     healthCheck,
			HealthCheckInterval: cfg.Asynq.HealthCheckInterval,
			Logger:              logger.NewAsynqLogger(slogger),
		},
	)
	mux := workers.NewServeMux(processors, m, slogger)

	var periodic *asynq.Scheduler
	if cfg.Scheduler.Mode == scheduler.ModeAsynq {
		periodic, err = startPeriodic(ctx, cfg, slogger)
		if err != nil {
			slogger.Error("failed to start periodic scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	metricsServer := serveMetrics(cfg.Asynq.MetricsAddr, m, slogger)

	if err := srv.Start(mux); err != nil {
		slogger.Error("failed to run worker server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.Bool("reports", processors.Report != nil))

	<-ctx.Done()
	slogger.Info("shutdown signal received")

	if periodic != nil {
		periodic.Shutdown()
	}
	srv.Shutdown()
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}
	slogger.Info("worker shutdown complete")
}

// startPeriodic registers the cron entries and queues one expiry pass so
// records are correct right after a deploy.
func startPeriodic(ctx context.Context, cfg *config.Config, log *slog.Logger) (*asynq.Scheduler, error) {
	periodic, err := scheduler.NewAsynqScheduler(cfg.Asynq, cfg.Scheduler, log)
	if err != nil {
		return nil, err
	}

	ids, err := scheduler.RegisterPeriodic(periodic, cfg.Scheduler, cfg.Analytics, cfg.Uploads.RetentionPeriod)
	if err != nil {
		return nil, err
	}
	if err := periodic.Start(); err != nil {
		return nil, err
	}

	taskQueue, closeQueue := queue.NewAsynqQueue(cfg.Asynq, log)
	defer closeQueue()
	if _, err := taskQueue.Enqueue(ctx, workers.TypeExpiryReconcile, struct{}{}); err != nil {
		log.Warn("failed to queue startup expiry pass", slog.String("error", err.Error()))
	}

	log.Info("periodic tasks registered", slog.Any("entries", ids))
	return periodic, nil
}

func serveMetrics(addr string, m *metrics.Metrics, log *slog.Logger) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	return srv
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.Int("retried", retried),
		slog.Int("max_retry", maxRetry),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}
