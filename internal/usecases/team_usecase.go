package usecases

import (
	"context"
	"errors"

	"diamond-insights.backend/internal/domain/entities"
	domainerrors "diamond-insights.backend/internal/domain/errors"
	"diamond-insights.backend/internal/domain/repositories"
	"diamond-insights.backend/internal/infrastructure/metrics"
	"diamond-insights.backend/pkg/logger"
	"go.uber.org/zap"
)

// TeamUsecase keeps the local teams table in step with records coming from api-sports.
type TeamUsecase struct {
	teamRepo repositories.TeamRepository
	uow      repositories.UnitOfWork
}

// NewTeamUsecase creates a new team usecase
func NewTeamUsecase(teamRepo repositories.TeamRepository, uow repositories.UnitOfWork) *TeamUsecase {
	return &TeamUsecase{
		teamRepo: teamRepo,
		uow:      uow,
	}
}

// UpsertTeams stores every complete, non-excluded record and returns the stored
// state of the teams it touched. Incomplete and excluded records are skipped
// without error. Writes happen in input order inside one transaction, so the last
// duplicate of an external id wins.
func (u *TeamUsecase) UpsertTeams(ctx context.Context, records []entities.TeamRecord) ([]*entities.Team, error) {
	teams := make([]*entities.Team, 0, len(records))
	for _, record := range records {
		team, ok := record.ToTeam()
		if !ok {
			metrics.RecordSkipped(metrics.SkipIncomplete)
			logger.Debug(ctx, "Skipping incomplete team record")
			continue
		}
		if entities.IsExcludedExternalID(team.ExternalID) {
			metrics.RecordSkipped(metrics.SkipExcluded)
			logger.Debug(ctx, "Skipping league aggregate",
				zap.Int("api_sports_id", team.ExternalID),
				zap.String("name", team.Name),
			)
			continue
		}
		teams = append(teams, team)
	}

	if len(teams) == 0 {
		return []*entities.Team{}, nil
	}

	touched := make([]int, 0, len(teams))
	seen := make(map[int]struct{}, len(teams))
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, team := range teams {
			if err := u.teamRepo.Upsert(txCtx, team); err != nil {
				return err
			}
			logger.Debug(txCtx, "Saved team",
				zap.Int("api_sports_id", team.ExternalID),
				zap.String("name", team.Name),
			)
			if _, ok := seen[team.ExternalID]; !ok {
				seen[team.ExternalID] = struct{}{}
				touched = append(touched, team.ExternalID)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "Team upsert batch failed", zap.Error(err))
		return nil, domainerrors.Storage(err)
	}
	metrics.RecordUpserted(len(teams))

	stored, err := u.teamRepo.ListByExternalIDs(ctx, touched)
	if err != nil {
		return nil, domainerrors.Storage(err)
	}

	logger.Info(ctx, "Upserted teams",
		zap.Int("received", len(records)),
		zap.Int("written", len(teams)),
		zap.Int("returned", len(stored)),
	)
	return stored, nil
}

// GetAllTeams returns every stored team ordered by external id
func (u *TeamUsecase) GetAllTeams(ctx context.Context) ([]*entities.Team, error) {
	teams, err := u.teamRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.Storage(err)
	}
	return teams, nil
}

// GetTeamByExternalID reports found=false, with a nil error, when no team has the id.
func (u *TeamUsecase) GetTeamByExternalID(ctx context.Context, externalID int) (*entities.Team, bool, error) {
	team, err := u.teamRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, domainerrors.Storage(err)
	}
	return team, true, nil
}
