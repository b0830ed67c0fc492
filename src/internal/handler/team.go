package handler

import (
	"net/http"

	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/service"
	"tracker-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam handles POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	team, err := h.teamService.CreateTeam(req.Name, req.Slug, orgID, actor.UserID)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListTeams handles GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	_, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	teams, err := h.teamService.GetTeamsByOrganization(orgID)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeamMembers handles GET /api/v1/teams/:teamId/members
func (h *TeamHandler) GetTeamMembers(c *gin.Context) {
	_, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	members, err := h.teamService.GetTeamMembers(c.Param("teamId"), orgID)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, members)
}

// RegisterRoutes registers all team routes
func (h *TeamHandler) RegisterRoutes(r *gin.Engine) {
	teams := r.Group("/api/v1/teams")
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
		teams.GET("/:teamId/members", h.GetTeamMembers)
	}
}
