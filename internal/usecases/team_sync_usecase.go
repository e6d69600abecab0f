package usecases

import (
	"context"
	"fmt"
	"time"

	"diamond-insights.backend/internal/domain/entities"
	domainerrors "diamond-insights.backend/internal/domain/errors"
	"diamond-insights.backend/internal/infrastructure/metrics"
	"diamond-insights.backend/pkg/logger"
	"go.uber.org/zap"
)

// TeamsFetcher loads the raw teams payload from the external API
type TeamsFetcher interface {
	FetchTeams(ctx context.Context, season string) (map[string]any, error)
}

// TeamUpserter persists raw team records
type TeamUpserter interface {
	UpsertTeams(ctx context.Context, records []entities.TeamRecord) ([]*entities.Team, error)
}

type syncTriggerKey struct{}

// WithSyncTrigger labels sync metrics recorded under ctx. Unlabelled syncs count as http.
func WithSyncTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, syncTriggerKey{}, trigger)
}

// SyncTrigger returns the label set by WithSyncTrigger.
func SyncTrigger(ctx context.Context) string {
	if trigger, ok := ctx.Value(syncTriggerKey{}).(string); ok && trigger != "" {
		return trigger
	}
	return metrics.TriggerHTTP
}

// TeamSyncUsecase wires the fetcher to the team store
type TeamSyncUsecase struct {
	fetcher TeamsFetcher
	teams   TeamUpserter
}

// NewTeamSyncUsecase creates a new team sync usecase
func NewTeamSyncUsecase(fetcher TeamsFetcher, teams TeamUpserter) *TeamSyncUsecase {
	return &TeamSyncUsecase{
		fetcher: fetcher,
		teams:   teams,
	}
}

// FetchTeams proxies the external payload without touching storage
func (u *TeamSyncUsecase) FetchTeams(ctx context.Context, season string) (map[string]any, error) {
	return u.fetcher.FetchTeams(ctx, season)
}

// SyncTeams fetches teams and upserts them. Nothing is written unless the fetch
// produced a usable payload.
func (u *TeamSyncUsecase) SyncTeams(ctx context.Context, season string) (result *entities.TeamSyncResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordSync(SyncTrigger(ctx), err, time.Since(start))
	}()

	payload, err := u.fetcher.FetchTeams(ctx, season)
	if err != nil {
		return nil, err
	}
	if err := payloadErrors(payload); err != nil {
		return nil, domainerrors.NewExternalUnexpectedError(err)
	}
	records, err := entities.TeamRecordsFromPayload(payload)
	if err != nil {
		return nil, domainerrors.NewExternalUnexpectedError(err)
	}

	teams, err := u.teams.UpsertTeams(ctx, records)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Synced teams",
		zap.String("season", season),
		zap.Int("teams_synced", len(teams)),
	)
	return &entities.TeamSyncResult{
		TeamsSynced: len(teams),
		APIResponse: payload,
		Teams:       teams,
	}, nil
}

// payloadErrors reports the "errors" member api-sports fills instead of failing
// with an HTTP status (bad key, plan limits). It is an empty list on success.
func payloadErrors(payload map[string]any) error {
	switch v := payload["errors"].(type) {
	case map[string]any:
		if len(v) > 0 {
			return fmt.Errorf("api-sports reported errors: %v", v)
		}
	case []any:
		if len(v) > 0 {
			return fmt.Errorf("api-sports reported errors: %v", v)
		}
	}
	return nil
}
