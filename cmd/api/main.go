// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/medstock-be/internal/adapters/queue"
	redis_a "github.com/ammerola/medstock-be/internal/adapters/redis_adapter"
	"github.com/ammerola/medstock-be/internal/adapters/store"
	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/core/services"
	"github.com/ammerola/medstock-be/internal/handlers"
	"github.com/ammerola/medstock-be/internal/handlers/middleware"
	"github.com/ammerola/medstock-be/internal/pkg/clock"
	"github.com/ammerola/medstock-be/internal/pkg/config"
	"github.com/ammerola/medstock-be/internal/pkg/logger"
	"github.com/ammerola/medstock-be/internal/pkg/metrics"
	"github.com/ammerola/medstock-be/internal/scheduler"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting medicine stock API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat,
		slog.String("service", "medstock-api"),
		slog.String("version", Version),
		slog.String("env", cfg.App.Environment))
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
		slog.String("scheduler", cfg.Scheduler.Mode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup(slogger)

	if cfg.Scheduler.Mode == scheduler.ModeInProcess {
		sched, err := scheduler.New(deps.service.Reconciler(), deps.clock, cfg.Scheduler, slogger)
		if err != nil {
			slogger.Error("failed to create scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		go sched.Run(ctx)
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		slogger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database    ports.Database
	redisClient *redis.Client
	closeQueue  func() error
	inspector   *asynq.Inspector
	metrics     *metrics.Metrics
	clock       clock.System
	service     *services.MedicineService
	handlers    handlers.Handlers
}

func (d *dependencies) cleanup(log *slog.Logger) {
	if d.closeQueue != nil {
		if err := d.closeQueue(); err != nil {
			log.Error("failed to close task queue", slog.String("error", err.Error()))
		}
	}
	if d.inspector != nil {
		d.inspector.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	medicines, database, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	deps.database = database

	// The cache only speeds up analytics; the API keeps serving without it.
	var cache ports.CacheRepository
	redisClient := redis.NewClient(&redis.Options{
		Addr:            cfg.GetRedisAddress(),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, analytics will not be cached",
			slog.String("address", cfg.GetRedisAddress()),
			slog.String("error", err.Error()))
		redisClient.Close()
	} else {
		deps.redisClient = redisClient
		cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, log)
	}

	if cfg.Server.EnableMetrics {
		deps.metrics = metrics.New(true)
	}
	var observer ports.Observer
	if deps.metrics != nil {
		observer = deps.metrics
	}

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}
	deps.clock = clock.New(loc)
	deps.service = services.NewMedicineService(medicines, cache, deps.clock, observer, services.MedicineServiceConfig{
		ExpiryWindowDays: cfg.Analytics.ExpiryWindowDays,
		AnalyticsTTL:     cfg.Analytics.CacheTTL,
	}, log)

	taskQueue, closeQueue := queue.NewAsynqQueue(cfg.Asynq, log)
	deps.closeQueue = closeQueue
	deps.inspector = asynq.NewInspector(queue.RedisOpt(cfg.Asynq))

	var cachePinger handlers.Pinger
	if cache != nil {
		cachePinger = cache
	}

	maxFileSize := int64(cfg.Uploads.MaxSizeMB) * 1024 * 1024
	deps.handlers = handlers.Handlers{
		Medicines: handlers.NewMedicineHandler(deps.service, log),
		Analytics: handlers.NewAnalyticsHandler(deps.service, log),
		Export:    handlers.NewExportHandler(deps.service, deps.clock, log),
		Import:    handlers.NewImportHandler(taskQueue, deps.clock, log, maxFileSize, cfg.Uploads.Dir),
		Metrics:   deps.metrics,
	}
	if cfg.Server.EnableHealthCheck {
		deps.handlers.Health = handlers.NewHealthHandler(database, cachePinger, deps.inspector, cfg.App, log)
	}

	log.Info("all dependencies initialized successfully",
		slog.String("store", database.Driver()),
		slog.Bool("cache", cache != nil))
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps.handlers)

	mws := []func(http.Handler) http.Handler{
		middleware.Recovery(log),
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(log, cfg.Security.TrustedProxies),
		middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration, cfg.Security.TrustedProxies),
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, mws...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}

