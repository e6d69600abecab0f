package repositories

import (
	"context"

	"diamond-insights.backend/internal/domain/entities"
)

type TeamRepository interface {
	// Upsert inserts the team or, when its ExternalID already exists, updates name and logo
	// in the same statement.
	Upsert(ctx context.Context, team *entities.Team) error
	GetByExternalID(ctx context.Context, externalID int) (*entities.Team, error)
	ListByExternalIDs(ctx context.Context, externalIDs []int) ([]*entities.Team, error)
	List(ctx context.Context) ([]*entities.Team, error)
}
