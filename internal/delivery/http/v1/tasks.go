package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/models"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

type getTaskResponse struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	AssigneeID     *string    `json:"assignee_id"`
	ReporterID     string     `json:"reporter_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		DueDate:        task.DueDate,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		AssigneeID:     task.AssigneeID,
		ReporterID:     task.ReporterID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

type createTaskRequest struct {
	ProjectID      string     `json:"project_id" binding:"required,uuid"`
	Title          string     `json:"title" binding:"required,notblank,max=255"`
	Description    *string    `json:"description" binding:"omitempty,max=4096"`
	Status         string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,gte=0"`
	AssigneeID     *string    `json:"assignee_id" binding:"omitempty,uuid"`
}

// HandleCreateTask creates a task reported by the authenticated user.
func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if !h.bind(c, &req) {
		return
	}

	userID, _ := getStringFromContext(c, userIDCtxKey)
	task, err := h.tasks.CreateTask(c, &models.Task{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.Status(req.Status),
		Priority:       models.Priority(req.Priority),
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		AssigneeID:     req.AssigneeID,
		ReporterID:     userID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTaskByID(c, taskID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

type updateTaskRequest struct {
	Title          *string    `json:"title" binding:"omitempty,notblank,max=255"`
	Description    *string    `json:"description" binding:"omitempty,max=4096"`
	Status         *string    `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,gte=0"`
	ActualHours    *float64   `json:"actual_hours" binding:"omitempty,gte=0"`
	AssigneeID     *string    `json:"assignee_id" binding:"omitempty,uuid"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if !h.bind(c, &req) {
		return
	}

	var priority *models.Priority
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		priority = &p
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:             taskID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         statusPtr(req.Status),
		Priority:       priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		AssigneeID:     req.AssigneeID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

type setTaskStatusQuery struct {
	Status string `form:"status" binding:"required,oneof=todo in_progress done"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	var query setTaskStatusQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(bindingErrorMessage(err)))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:     taskID,
		Status: models.Status(query.Status),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}
