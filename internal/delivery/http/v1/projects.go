package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/models"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

type getProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	TeamID      string     `json:"team_id"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

func newGetProjectResponse(project *models.Project) getProjectResponse {
	return getProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		TeamID:      project.TeamID,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
	}
}

type createProjectRequest struct {
	Name        string     `json:"name" binding:"required,notblank,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=4096"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	TeamID      string     `json:"team_id" binding:"required,uuid"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if !h.bind(c, &req) {
		return
	}

	userID, _ := getStringFromContext(c, userIDCtxKey)
	project, err := h.projects.CreateProject(c, &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.Status(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TeamID:      req.TeamID,
		CreatedBy:   userID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetProjectResponse(project))
}

func (h *handlerImpl) HandleGetProject(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	project, err := h.projects.GetProjectByID(c, projectID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetProjectResponse(project))
}

type updateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=4096"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	TeamID      *string    `json:"team_id" binding:"omitempty,uuid"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if !h.bind(c, &req) {
		return
	}

	project, err := h.projects.UpdateProject(c, services.UpdateProjectParams{
		ID:          projectID,
		Name:        req.Name,
		Description: req.Description,
		Status:      statusPtr(req.Status),
		TeamID:      req.TeamID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetProjectResponse(project))
}

type getProjectTasksQuery struct {
	Offset uint32 `form:"offset"`
	Limit  uint32 `form:"limit" binding:"omitempty,max=100"`
}

func (h *handlerImpl) HandleGetProjectTasks(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var query getProjectTasksQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(bindingErrorMessage(err)))
		return
	}

	tasks, err := h.tasks.GetTasksByProjectID(c, projectID, query.Offset, query.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	resp := make([]getTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, newGetTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func statusPtr(s *string) *models.Status {
	if s == nil {
		return nil
	}
	status := models.Status(*s)
	return &status
}
