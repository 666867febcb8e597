package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/curriculum-scheduler/api/swagger"
	"github.com/noah-isme/curriculum-scheduler/internal/handler"
	"github.com/noah-isme/curriculum-scheduler/internal/repository"
	"github.com/noah-isme/curriculum-scheduler/internal/service"
	"github.com/noah-isme/curriculum-scheduler/pkg/cache"
	"github.com/noah-isme/curriculum-scheduler/pkg/config"
	"github.com/noah-isme/curriculum-scheduler/pkg/database"
	"github.com/noah-isme/curriculum-scheduler/pkg/jobs"
	"github.com/noah-isme/curriculum-scheduler/pkg/logger"
	"github.com/noah-isme/curriculum-scheduler/pkg/storage"
)

// @title Curriculum Scheduler API
// @version 1.0.0
// @description Generates conflict-free course schedules and manages versioned schedule runs.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close() //nolint:errcheck
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	var redisClient redis.UniversalClient
	if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
		logr.Warn("redis unavailable, result cache disabled", zap.Error(err))
	} else {
		redisClient = client
	}

	opts, err := service.EngineOptions(cfg.Engine)
	if err != nil {
		return fmt.Errorf("engine policy: %w", err)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, cache.KeyPrefix, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Scheduler.CacheTTL, logr, cacheRepo.Enabled())

	runRepo := repository.NewScheduleRunRepository(db)
	assignmentRepo := repository.NewScheduleAssignmentRepository(db)
	exportRepo := repository.NewExportJobRepository(db)

	tokens := service.NewTokenService(validate, logr, service.TokenConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		Expiry: cfg.JWT.Expiration,
	})

	generator := service.NewScheduleGeneratorService(runRepo, assignmentRepo, db, cacheSvc, metrics, validate, logr, service.ScheduleGeneratorConfig{
		ProposalTTL: cfg.Scheduler.ProposalTTL,
		Options:     opts,
	})

	var exportHandler *handler.ExportHandler
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			return fmt.Errorf("export storage: %w", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exporter := service.NewExportService(runRepo, assignmentRepo, store, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
			Window:    opts.Window,
		}, logr, nil, nil)

		worker := service.NewExportWorker(exportRepo, exporter, metrics, logr)
		queue := jobs.NewQueue("exports", worker.Handle, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
			OnExhaust:  worker.Exhausted,
		})
		queue.Start(ctx)
		defer queue.Stop()

		exportJobs := service.NewExportJobService(exportRepo, runRepo, queue, exporter, validate, logr, service.ExportJobConfig{
			ResultTTL:       cfg.Exports.SignedURLTTL,
			CleanupInterval: cfg.Exports.CleanupInterval,
		})
		exportJobs.RecoverPendingJobs(ctx)
		exportJobs.StartCleanup(ctx)
		exportHandler = handler.NewExportHandler(exportJobs)
	}

	checks := map[string]handler.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return db.PingContext(ctx) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := newRouter(cfg, logr, routes{
		tokens:    tokens,
		metrics:   metrics,
		generator: handler.NewScheduleGeneratorHandler(generator),
		exports:   exportHandler,
		health:    handler.NewMetricsHandler(metrics, checks),
		enabled:   cfg.Scheduler.Enabled,
	})

	return serve(ctx, logr, &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, db)
}

func serve(ctx context.Context, logr *zap.Logger, srv *http.Server, db *sqlx.DB) error {
	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down", zap.Int("db_open_connections", db.Stats().OpenConnections))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
