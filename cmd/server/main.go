package main

import (
	"context"
	"database/sql"
	"fmt"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diamond-insights.backend/internal/config"
	"diamond-insights.backend/internal/infrastructure/apisports"
	"diamond-insights.backend/internal/infrastructure/datasources/postgres"
	"diamond-insights.backend/internal/infrastructure/jobs"
	"diamond-insights.backend/internal/infrastructure/repositories"
	"diamond-insights.backend/internal/interfaces/http/handlers"
	"diamond-insights.backend/internal/interfaces/http/middleware"
	"diamond-insights.backend/internal/usecases"
	"diamond-insights.backend/pkg/logger"
	"diamond-insights.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.Open
	runServer  = serveUntilDone
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

const shutdownTimeout = 10 * time.Second

// serveUntilDone serves until the listener fails or ctx is cancelled, then
// drains in-flight requests.
func serveUntilDone(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, team endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	// Repositories
	teamRepo := repositories.NewTeamRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	apiClient := apisports.NewClient(cfg.APISports)
	teamUsecase := usecases.NewTeamUsecase(teamRepo, uow)
	teamSyncUsecase := usecases.NewTeamSyncUsecase(apiClient, teamUsecase)

	// Handlers
	teamHandler := handlers.NewTeamHandler(teamSyncUsecase, teamUsecase)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var syncJob *jobs.TeamSyncJob
	if cfg.Sync.Enabled {
		syncJob = jobs.NewTeamSyncJob(teamSyncUsecase, cfg.Sync.Schedule, cfg.Sync.Season)
		go func() {
			if err := syncJob.Start(runCtx); err != nil {
				logger.Error(runCtx, "Team sync job failed to start", zap.Error(err))
			}
		}()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.Server.CORSOrigins)
	registerRootRoutes(r, cfg.App,
		healthCheck{name: "database", check: sqlDB.PingContext},
		healthCheck{name: "redis", check: redis.Ping},
	)
	registerAPIV1Routes(r, routeDeps{
		teamHandler: teamHandler,
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	logger.Info(ctx, "Diamond Insights API starting",
		zap.String("port", cfg.Server.Port),
		zap.String("version", cfg.App.Version),
		zap.Bool("team_sync_enabled", cfg.Sync.Enabled),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err = runServer(runCtx, srv)
	if syncJob != nil {
		syncJob.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
