package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-team-tasks/internal/models"
)

const tasksProjectIDForeignKey = "tasks_project_id_fkey"

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxPool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool PgxPool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now()
	task = &models.Task{
		ProjectID:      task.ProjectID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		DueDate:        task.DueDate,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		AssigneeID:     task.AssigneeID,
		ReporterID:     task.ReporterID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task uuid: %w", err)
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   project_id,
                   title,
                   description,
                   status,
                   priority,
                   due_date,
                   estimated_hours,
                   actual_hours,
                   assignee_id,
                   reporter_id,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.EstimatedHours,
		task.ActualHours,
		task.AssigneeID,
		task.ReporterID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("project_id", task.ProjectID).
				Str("constraint", constraint).
				Msg("task reference not found")
			if constraint == tasksProjectIDForeignKey {
				return nil, ErrProjectNotFound
			}
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	task := &models.Task{ID: taskID}

	const selectTaskByIDQuery = `
SELECT project_id,
       title,
       description,
       status,
       priority,
       due_date,
       estimated_hours,
       actual_hours,
       assignee_id,
       reporter_id,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.EstimatedHours,
		&task.ActualHours,
		&task.AssigneeID,
		&task.ReporterID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to select task by id: %w", err)
	}

	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("selected task by id")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByProjectID(ctx context.Context, projectID string, offset, limit uint32) ([]*models.Task, error) {
	if limit == 0 {
		limit = 32
	}

	const selectTasksByProjectIDQuery = `
SELECT id,
       title,
       description,
       status,
       priority,
       due_date,
       estimated_hours,
       actual_hours,
       assignee_id,
       reporter_id,
       created_at,
       updated_at
FROM tasks
WHERE project_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByProjectIDQuery,
		projectID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks by project id: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		task := &models.Task{ProjectID: projectID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.DueDate,
			&task.EstimatedHours,
			&task.ActualHours,
			&task.AssigneeID,
			&task.ReporterID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	if len(tasks) == 0 {
		err = s.checkProjectExists(ctx, projectID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("project_id", projectID).
		Msg("selected tasks by project id")
	return tasks, nil
}

func (s *taskServiceImpl) checkProjectExists(ctx context.Context, projectID string) error {
	const selectProjectExistsQuery = `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`

	var exists bool
	err := s.pgPool.QueryRow(ctx, selectProjectExistsQuery, projectID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		s.logger.Warn().
			Str("project_id", projectID).
			Msg("project not found")
		return ErrProjectNotFound
	}
	return nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Status != nil && !params.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		ID:        params.ID,
		UpdatedAt: time.Now(),
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    priority = COALESCE($4, priority),
    due_date = COALESCE($5, due_date),
    estimated_hours = COALESCE($6, estimated_hours),
    actual_hours = COALESCE($7, actual_hours),
    assignee_id = COALESCE($8, assignee_id),
    updated_at = $9
WHERE id = $10
RETURNING project_id, title, description, status, priority, due_date,
          estimated_hours, actual_hours, assignee_id, reporter_id, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		params.Title,
		params.Description,
		params.Status,
		params.Priority,
		params.DueDate,
		params.EstimatedHours,
		params.ActualHours,
		params.AssigneeID,
		task.UpdatedAt,
		task.ID,
	).Scan(
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.EstimatedHours,
		&task.ActualHours,
		&task.AssigneeID,
		&task.ReporterID,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}
		if _, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("task assignee not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error) {
	if !params.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	status := params.Status
	return s.UpdateTask(ctx, UpdateTaskParams{
		ID:     params.ID,
		Status: &status,
	})
}
