package repositories

import (
	"context"
	"errors"

	"diamond-insights.backend/internal/domain/entities"
	domainerrors "diamond-insights.backend/internal/domain/errors"
	"diamond-insights.backend/internal/infrastructure/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert relies on the unique api_sports_id index; a second writer for the same
// external id turns into an update instead of a duplicate row.
func (r *TeamRepository) Upsert(ctx context.Context, team *entities.Team) error {
	m := r.toModel(team)
	err := GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "api_sports_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "logo", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	team.ID = m.ID
	return nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("api_sports_id = ?", externalID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) ListByExternalIDs(ctx context.Context, externalIDs []int) ([]*entities.Team, error) {
	if len(externalIDs) == 0 {
		return []*entities.Team{}, nil
	}

	var ms []models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("api_sports_id IN ?", externalIDs).
		Order("api_sports_id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*entities.Team, error) {
	var ms []models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("api_sports_id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *TeamRepository) toEntities(ms []models.Team) []*entities.Team {
	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	return &entities.Team{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Logo:       m.Logo,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:         e.ID,
		ExternalID: e.ExternalID,
		Name:       e.Name,
		Logo:       e.Logo,
	}
}
