package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/models"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

type getTeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newGetTeamResponse(team *models.Team) getTeamResponse {
	return getTeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		CreatedAt:   team.CreatedAt,
	}
}

type createTeamRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=255"`
	Description *string `json:"description" binding:"omitempty,max=4096"`
}

// HandleCreateTeam creates a team owned by the authenticated user.
func (h *handlerImpl) HandleCreateTeam(c *gin.Context) {
	var req createTeamRequest
	if !h.bind(c, &req) {
		return
	}

	userID, _ := getStringFromContext(c, userIDCtxKey)
	team, err := h.teams.CreateTeam(c, &models.Team{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTeamResponse(team))
}

func (h *handlerImpl) HandleGetTeam(c *gin.Context) {
	teamID, ok := h.bindID(c)
	if !ok {
		return
	}

	team, err := h.teams.GetTeamByID(c, teamID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTeamResponse(team))
}

type updateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description" binding:"omitempty,max=4096"`
	OwnerID     *string `json:"owner_id" binding:"omitempty,uuid"`
}

func (h *handlerImpl) HandleUpdateTeam(c *gin.Context) {
	teamID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req updateTeamRequest
	if !h.bind(c, &req) {
		return
	}

	team, err := h.teams.UpdateTeam(c, services.UpdateTeamParams{
		ID:          teamID,
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTeamResponse(team))
}

type addTeammateRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=admin teammate viewer"`
}

type getTeammateResponse struct {
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func (h *handlerImpl) HandleAddTeammate(c *gin.Context) {
	teamID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req addTeammateRequest
	if !h.bind(c, &req) {
		return
	}

	teammate, err := h.teams.AddTeammate(c, &models.Teammate{
		TeamID: teamID,
		UserID: req.UserID,
		Role:   models.Role(req.Role),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, getTeammateResponse{
		TeamID:   teammate.TeamID,
		UserID:   teammate.UserID,
		Role:     string(teammate.Role),
		JoinedAt: teammate.JoinedAt,
	})
}

type getUsersForTeamResponse struct {
	getUserResponse
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func (h *handlerImpl) HandleGetUsersForTeam(c *gin.Context) {
	teamID, ok := h.bindID(c)
	if !ok {
		return
	}

	users, err := h.teams.GetUsersForTeam(c, teamID)
	if err != nil {
		fail(c, err)
		return
	}

	resp := make([]getUsersForTeamResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, getUsersForTeamResponse{
			getUserResponse: newGetUserResponse(&u.User),
			Role:            string(u.Role),
			JoinedAt:        u.JoinedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlerImpl) HandleGetTeamProjects(c *gin.Context) {
	teamID, ok := h.bindID(c)
	if !ok {
		return
	}

	projects, err := h.projects.GetProjectsByTeamID(c, teamID)
	if err != nil {
		fail(c, err)
		return
	}

	resp := make([]getProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, newGetProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
