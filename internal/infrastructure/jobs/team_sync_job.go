package jobs

import (
	"context"
	"fmt"
	"sync"

	"diamond-insights.backend/internal/domain/entities"
	"diamond-insights.backend/internal/infrastructure/metrics"
	"diamond-insights.backend/internal/usecases"
	"diamond-insights.backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TeamSyncer runs one fetch and upsert round
type TeamSyncer interface {
	SyncTeams(ctx context.Context, season string) (*entities.TeamSyncResult, error)
}

// TeamSyncJob refreshes the teams table on a cron schedule
type TeamSyncJob struct {
	syncer   TeamSyncer
	schedule string
	season   string
	cron     *cron.Cron
	stop     chan struct{}
	stopOnce sync.Once
}

func NewTeamSyncJob(syncer TeamSyncer, schedule, season string) *TeamSyncJob {
	return &TeamSyncJob{
		syncer:   syncer,
		schedule: schedule,
		season:   season,
		// A slow round delays the next one instead of overlapping it.
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		stop: make(chan struct{}),
	}
}

// Start schedules the sync and blocks until ctx is cancelled or Stop is called.
func (j *TeamSyncJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule team sync: %w", err)
	}

	j.cron.Start()
	logger.Info(ctx, "Team sync job started",
		zap.String("schedule", j.schedule),
		zap.String("season", j.season),
	)

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Team sync job stopped (context cancelled)")
	case <-j.stop:
		logger.Info(ctx, "Team sync job stopped")
	}

	<-j.cron.Stop().Done()
	return nil
}

func (j *TeamSyncJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// RunOnce performs a single scheduled round. Failures are logged and left for the next tick.
func (j *TeamSyncJob) RunOnce(ctx context.Context) {
	ctx = usecases.WithSyncTrigger(ctx, metrics.TriggerSchedule)

	result, err := j.syncer.SyncTeams(ctx, j.season)
	if err != nil {
		logger.Error(ctx, "Scheduled team sync failed",
			zap.String("season", j.season),
			zap.Error(err),
		)
		return
	}

	logger.Info(ctx, "Scheduled team sync complete",
		zap.String("season", j.season),
		zap.Int("teams_synced", result.TeamsSynced),
	)
}
