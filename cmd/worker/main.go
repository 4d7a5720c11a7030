// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	redis_a "github.com/GGT-dev-tech/auctionos/internal/adapters/redis_adapter"
	"github.com/GGT-dev-tech/auctionos/internal/adapters/restapi"
	"github.com/GGT-dev-tech/auctionos/internal/adapters/storage"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
	"github.com/GGT-dev-tech/auctionos/internal/pkg/config"
	"github.com/GGT-dev-tech/auctionos/internal/pkg/logger"
	"github.com/GGT-dev-tech/auctionos/internal/workers"
)

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json")

	// Load configuration
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	// Redis-backed progress store shared with the CLI
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	defer redisClient.Close()

	progress := redis_a.NewProgressStore(redisClient, cfg.Redis.TTL, slogger)
	if err := progress.Ping(ctx); err != nil {
		slogger.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Import source storage: S3 in production, local directory otherwise
	sources, err := initSources(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize source storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Authenticated API client using the worker's service account
	propertyAPI, err := initPropertyAPI(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to authenticate against the admin API", slog.String("error", err.Error()))
		os.Exit(1)
	}

	importer := services.NewImporter(propertyAPI, progress, slogger)

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		},
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck,
			Logger:          newAsynqLogger(slogger),
		},
	)

	// Create task handlers
	mux := asynq.NewServeMux()

	// Register import handlers
	importProcessor := workers.NewImportProcessor(importer, sources, progress, slogger)
	mux.HandleFunc(workers.TypeCSVImport, importProcessor.ProcessCSV)
	mux.HandleFunc(workers.TypeXLSXImport, importProcessor.ProcessXLSX)
	mux.HandleFunc(workers.TypePDFImport, importProcessor.ProcessPDF)

	// Register cleanup handler
	cleanupProcessor := workers.NewCleanupProcessor(cfg.Import.TempDir, cfg.Import.CleanupMaxAge, slogger)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanupProcessor.CleanupTempFiles)

	// Periodically enqueue temp file cleanup
	stopCleanup := scheduleCleanup(cfg, slogger)
	defer stopCleanup()

	// Handle shutdown gracefully
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	// Wait for shutdown signal
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Gracefully shutdown
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func initSources(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (storage.SourceStore, error) {
	if cfg.Import.UseS3 {
		return storage.NewS3Source(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
			StagingPrefix:   cfg.AWS.StagingPrefix,
			ArchivePrefix:   cfg.AWS.ArchivePrefix,
			TempDir:         cfg.Import.TempDir,
		}, slogger)
	}
	return storage.NewLocalSource(cfg.Import.LocalDir, slogger)
}

// initPropertyAPI logs in with the worker's service-account credentials
// and returns a property client bound to the resulting token.
func initPropertyAPI(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*restapi.PropertyClient, error) {
	var sm config.SecretsManager
	if cfg.IsProduction() {
		awsSM, err := config.NewAWSSecretsManager(cfg.AWS.Region, cfg.API.SecretsName, slogger)
		if err != nil {
			return nil, fmt.Errorf("secrets manager: %w", err)
		}
		sm = awsSM
	} else {
		sm = config.NewEnvSecretsManager()
	}

	creds, err := config.ResolveAPICredentials(ctx, sm)
	if err != nil {
		return nil, fmt.Errorf("resolve api credentials: %w", err)
	}

	tokens := &serviceToken{}
	client, err := restapi.NewClient(restapi.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	}, tokens, slogger)
	if err != nil {
		return nil, err
	}

	token, err := restapi.NewUserClient(client, slogger).Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("service account login: %w", err)
	}
	tokens.set(token)

	return restapi.NewPropertyClient(client, slogger), nil
}

func scheduleCleanup(cfg *config.Config, slogger *slog.Logger) func() {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	})
	ticker := time.NewTicker(cfg.Import.CleanupInterval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				task := asynq.NewTask(workers.TypeCleanupTempFiles, nil)
				if _, err := client.Enqueue(task, asynq.Queue("low")); err != nil {
					slogger.Warn("failed to enqueue cleanup task", slog.String("error", err.Error()))
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
		client.Close()
	}
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
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

// serviceToken holds the bearer token obtained by the service-account
// login. It satisfies restapi.TokenSource.
type serviceToken struct {
	mu    sync.RWMutex
	token string
}

func (t *serviceToken) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *serviceToken) set(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
