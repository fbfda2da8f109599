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

const teammatesUserIDForeignKey = "teammates_user_id_fkey"

type teamServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxPool
}

func NewTeamService(
	logger zerolog.Logger,
	pgPool PgxPool,
) TeamService {
	return &teamServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *teamServiceImpl) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	team = &models.Team{
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		CreatedAt:   time.Now(),
	}

	teamUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate team uuid: %w", err)
	}
	team.ID = teamUUID.String()

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertTeamQuery = `
INSERT INTO teams (id,
                   name,
                   description,
                   owner_id,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = tx.Exec(
		ctx,
		insertTeamQuery,
		team.ID,
		team.Name,
		team.Description,
		team.OwnerID,
		team.CreatedAt,
	)
	if err != nil {
		if _, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("owner_id", team.OwnerID).
				Msg("team owner not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}

	const insertOwnerQuery = `
INSERT INTO teammates (team_id,
                       user_id,
                       role,
                       joined_at)
VALUES ($1, $2, $3, $4)
`
	_, err = tx.Exec(
		ctx,
		insertOwnerQuery,
		team.ID,
		team.OwnerID,
		models.RoleAdmin,
		team.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert team owner: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Str("team_id", team.ID).
		Str("owner_id", team.OwnerID).
		Msg("created team")
	return team, nil
}

func (s *teamServiceImpl) GetTeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	team := &models.Team{ID: teamID}

	const selectTeamByIDQuery = `
SELECT name,
       description,
       owner_id,
       created_at
FROM teams
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTeamByIDQuery,
		team.ID,
	).Scan(
		&team.Name,
		&team.Description,
		&team.OwnerID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("team_id", team.ID).
				Msg("team not found")
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to select team by id: %w", err)
	}

	s.logger.Debug().
		Str("team_id", team.ID).
		Msg("selected team by id")
	return team, nil
}

func (s *teamServiceImpl) UpdateTeam(ctx context.Context, params UpdateTeamParams) (*models.Team, error) {
	team := &models.Team{ID: params.ID}

	const updateTeamQuery = `
UPDATE teams
SET name = COALESCE($1, name),
    description = COALESCE($2, description),
    owner_id = COALESCE($3, owner_id)
WHERE id = $4
RETURNING name, description, owner_id, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTeamQuery,
		params.Name,
		params.Description,
		params.OwnerID,
		team.ID,
	).Scan(
		&team.Name,
		&team.Description,
		&team.OwnerID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("team_id", team.ID).
				Msg("team not found")
			return nil, ErrTeamNotFound
		}
		if _, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("team_id", team.ID).
				Msg("new team owner not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.logger.Info().
		Str("team_id", team.ID).
		Msg("updated team")
	return team, nil
}

func (s *teamServiceImpl) AddTeammate(ctx context.Context, teammate *models.Teammate) (*models.Teammate, error) {
	teammate = &models.Teammate{
		TeamID:   teammate.TeamID,
		UserID:   teammate.UserID,
		Role:     teammate.Role,
		JoinedAt: time.Now(),
	}

	const upsertTeammateQuery = `
INSERT INTO teammates (team_id,
                       user_id,
                       role,
                       joined_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (team_id, user_id) DO UPDATE
SET role = EXCLUDED.role
RETURNING joined_at
`
	err := s.pgPool.QueryRow(
		ctx,
		upsertTeammateQuery,
		teammate.TeamID,
		teammate.UserID,
		teammate.Role,
		teammate.JoinedAt,
	).Scan(&teammate.JoinedAt)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok {
			s.logger.Warn().
				Str("team_id", teammate.TeamID).
				Str("user_id", teammate.UserID).
				Str("constraint", constraint).
				Msg("teammate reference not found")
			if constraint == teammatesUserIDForeignKey {
				return nil, ErrUserNotFound
			}
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to upsert teammate: %w", err)
	}

	s.logger.Info().
		Str("team_id", teammate.TeamID).
		Str("user_id", teammate.UserID).
		Str("role", string(teammate.Role)).
		Msg("added teammate")
	return teammate, nil
}

func (s *teamServiceImpl) GetUsersForTeam(ctx context.Context, teamID string) ([]*models.TeamUser, error) {
	const selectUsersForTeamQuery = `
SELECT u.id,
       u.email,
       u.first_name,
       u.last_name,
       u.is_active,
       u.created_at,
       t.role,
       t.joined_at
FROM teammates t
JOIN users u ON u.id = t.user_id
WHERE t.team_id = $1
ORDER BY t.joined_at
`
	rows, err := s.pgPool.Query(
		ctx,
		selectUsersForTeamQuery,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select users for team: %w", err)
	}
	defer rows.Close()

	var users []*models.TeamUser
	for rows.Next() {
		teamUser := &models.TeamUser{}
		err = rows.Scan(
			&teamUser.User.ID,
			&teamUser.User.Email,
			&teamUser.User.FirstName,
			&teamUser.User.LastName,
			&teamUser.User.IsActive,
			&teamUser.User.CreatedAt,
			&teamUser.Role,
			&teamUser.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team user: %w", err)
		}
		users = append(users, teamUser)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	// The owner is always a member, so an empty result means no team.
	if len(users) == 0 {
		s.logger.Warn().
			Str("team_id", teamID).
			Msg("no users found for team")
		return nil, ErrTeamNotFound
	}

	s.logger.Debug().
		Int("count", len(users)).
		Str("team_id", teamID).
		Msg("selected users for team")
	return users, nil
}
