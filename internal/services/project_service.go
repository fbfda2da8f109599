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

const projectsCreatedByForeignKey = "projects_created_by_fkey"

type projectServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxPool
}

func NewProjectService(
	logger zerolog.Logger,
	pgPool PgxPool,
) ProjectService {
	return &projectServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	project = &models.Project{
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		TeamID:      project.TeamID,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   time.Now(),
	}
	if project.Status == "" {
		project.Status = models.StatusTodo
	}

	projectUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate project uuid: %w", err)
	}
	project.ID = projectUUID.String()

	const insertProjectQuery = `
INSERT INTO projects (id,
                      name,
                      description,
                      status,
                      start_date,
                      end_date,
                      team_id,
                      created_by,
                      created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertProjectQuery,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.TeamID,
		project.CreatedBy,
		project.CreatedAt,
	)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("team_id", project.TeamID).
				Str("constraint", constraint).
				Msg("project reference not found")
			if constraint == projectsCreatedByForeignKey {
				return nil, ErrUserNotFound
			}
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("team_id", project.TeamID).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	project := &models.Project{ID: projectID}

	const selectProjectByIDQuery = `
SELECT name,
       description,
       status,
       start_date,
       end_date,
       team_id,
       created_by,
       created_at
FROM projects
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectProjectByIDQuery,
		project.ID,
	).Scan(
		&project.Name,
		&project.Description,
		&project.Status,
		&project.StartDate,
		&project.EndDate,
		&project.TeamID,
		&project.CreatedBy,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("project_id", project.ID).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to select project by id: %w", err)
	}

	s.logger.Debug().
		Str("project_id", project.ID).
		Msg("selected project by id")
	return project, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error) {
	if params.Status != nil && !params.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	project := &models.Project{ID: params.ID}

	const updateProjectQuery = `
UPDATE projects
SET name = COALESCE($1, name),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    team_id = COALESCE($4, team_id),
    start_date = COALESCE($5, start_date),
    end_date = COALESCE($6, end_date)
WHERE id = $7
RETURNING name, description, status, start_date, end_date, team_id, created_by, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateProjectQuery,
		params.Name,
		params.Description,
		params.Status,
		params.TeamID,
		params.StartDate,
		params.EndDate,
		project.ID,
	).Scan(
		&project.Name,
		&project.Description,
		&project.Status,
		&project.StartDate,
		&project.EndDate,
		&project.TeamID,
		&project.CreatedBy,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("project_id", project.ID).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}
		if _, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("project_id", project.ID).
				Msg("new project team not found")
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) GetProjectsByTeamID(ctx context.Context, teamID string) ([]*models.Project, error) {
	const selectProjectsByTeamIDQuery = `
SELECT id,
       name,
       description,
       status,
       start_date,
       end_date,
       created_by,
       created_at
FROM projects
WHERE team_id = $1
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectProjectsByTeamIDQuery,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects by team id: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project := &models.Project{TeamID: teamID}
		err = rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Status,
			&project.StartDate,
			&project.EndDate,
			&project.CreatedBy,
			&project.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	if len(projects) == 0 {
		err = s.checkTeamExists(ctx, teamID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Debug().
		Int("count", len(projects)).
		Str("team_id", teamID).
		Msg("selected projects by team id")
	return projects, nil
}

func (s *projectServiceImpl) checkTeamExists(ctx context.Context, teamID string) error {
	const selectTeamExistsQuery = `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1)`

	var exists bool
	err := s.pgPool.QueryRow(ctx, selectTeamExistsQuery, teamID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check team existence: %w", err)
	}
	if !exists {
		s.logger.Warn().
			Str("team_id", teamID).
			Msg("team not found")
		return ErrTeamNotFound
	}
	return nil
}
