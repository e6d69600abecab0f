package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"diamond-insights.backend/internal/config"
	"diamond-insights.backend/internal/domain/entities"
	"diamond-insights.backend/internal/infrastructure/apisports"
	"diamond-insights.backend/internal/infrastructure/datasources/postgres"
	"diamond-insights.backend/internal/infrastructure/metrics"
	"diamond-insights.backend/internal/infrastructure/repositories"
	"diamond-insights.backend/internal/usecases"
	"diamond-insights.backend/pkg/logger"
)

type teamSyncRuntime interface {
	SyncTeams(ctx context.Context, season string) (*entities.TeamSyncResult, error)
}

type syncTeamsDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	initLog func(env string)
	prepare func(cfg *config.Config) (teamSyncRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSyncTeamsDeps() syncTeamsDeps {
	return syncTeamsDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		initLog: logger.Init,
		prepare: func(cfg *config.Config) (teamSyncRuntime, io.Closer, error) {
			db, err := postgres.NewConnection(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			teamUsecase := usecases.NewTeamUsecase(repositories.NewTeamRepository(db), repositories.NewUnitOfWork(db))
			return usecases.NewTeamSyncUsecase(apisports.NewClient(cfg.APISports), teamUsecase), sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runSyncTeams(ctx context.Context, args []string, deps syncTeamsDeps) error {
	def := defaultSyncTeamsDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.initLog == nil {
		deps.initLog = def.initLog
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("sync-teams", flag.ContinueOnError)
	seasonFlag := fs.String("season", "", "season to sync (defaults to TEAM_SYNC_SEASON)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	deps.initLog(cfg.Server.Env)
	defer logger.Sync()

	season := *seasonFlag
	if season == "" {
		season = cfg.Sync.Season
	}

	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	result, err := runtime.SyncTeams(usecases.WithSyncTrigger(ctx, metrics.TriggerCLI), season)
	if err != nil {
		return fmt.Errorf("failed syncing teams: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "Synced %d teams for season %s\n", result.TeamsSynced, season)
	for _, team := range result.Teams {
		_, _ = fmt.Fprintf(deps.out, "api_sports_id=%d id=%d name=%s\n", team.ExternalID, team.ID, team.Name)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runSyncTeams(ctx, os.Args[1:], defaultSyncTeamsDeps()); err != nil {
		stop()
		log.Fatal(err)
	}
}
