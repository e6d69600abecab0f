package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"diamond-insights.backend/internal/domain/entities"
	domainerrors "diamond-insights.backend/internal/domain/errors"
	"diamond-insights.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// TeamSyncService talks to api-sports
type TeamSyncService interface {
	FetchTeams(ctx context.Context, season string) (map[string]any, error)
	SyncTeams(ctx context.Context, season string) (*entities.TeamSyncResult, error)
}

// TeamQueryService reads stored teams
type TeamQueryService interface {
	GetAllTeams(ctx context.Context) ([]*entities.Team, error)
	GetTeamByExternalID(ctx context.Context, externalID int) (*entities.Team, bool, error)
}

type TeamHandler struct {
	sync  TeamSyncService
	teams TeamQueryService
}

func NewTeamHandler(sync TeamSyncService, teams TeamQueryService) *TeamHandler {
	return &TeamHandler{sync: sync, teams: teams}
}

type upsertedTeamResponse struct {
	ID          uint   `json:"id"`
	APISportsID int    `json:"api_sports_id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
}

// GetBaseballTeams proxies the api-sports teams payload.
// GET /api/v1/sports/baseball/teams
func (h *TeamHandler) GetBaseballTeams(c *gin.Context) {
	payload, err := h.sync.FetchTeams(c.Request.Context(), strings.TrimSpace(c.Query("season")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, payload)
}

// SyncBaseballTeams fetches teams from api-sports and upserts them.
// POST /api/v1/sports/baseball/teams/sync
func (h *TeamHandler) SyncBaseballTeams(c *gin.Context) {
	result, err := h.sync.SyncTeams(c.Request.Context(), strings.TrimSpace(c.Query("season")))
	if err != nil {
		response.Error(c, err)
		return
	}

	upserted := make([]upsertedTeamResponse, 0, len(result.Teams))
	for _, team := range result.Teams {
		upserted = append(upserted, upsertedTeamResponse{
			ID:          team.ID,
			APISportsID: team.ExternalID,
			Name:        team.Name,
			Logo:        team.Logo,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":              "success",
		"teams_synced":        result.TeamsSynced,
		"api_sports_response": result.APIResponse,
		"upserted_teams":      upserted,
	})
}

// ListTeams returns every stored team.
// GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teams.GetAllTeams(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, teams)
}

// GetTeam looks a stored team up by its api-sports id.
// GET /api/v1/teams/:externalId
func (h *TeamHandler) GetTeam(c *gin.Context) {
	externalID, err := strconv.Atoi(c.Param("externalId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid team ID"))
		return
	}

	team, found, err := h.teams.GetTeamByExternalID(c.Request.Context(), externalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, domainerrors.NotFound("team not found"))
		return
	}
	response.Data(c, team)
}
