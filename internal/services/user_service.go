package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-team-tasks/internal/models"
)

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxPool
}

func NewUserService(
	logger zerolog.Logger,
	pgPool PgxPool,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (bool, error) {
	now := time.Now()
	user := models.User{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("failed to generate user uuid: %w", err)
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = passwordHash

	const insertUserQuery = `
INSERT INTO users (id,
                   email,
                   password,
                   first_name,
                   last_name,
                   is_active,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO NOTHING
`
	tag, err := s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		s.logger.Info().
			Str("email", user.Email).
			Msg("user was not created")
		return false, nil
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("created user")
	return true, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{ID: userID}

	const selectUserByIDQuery = `
SELECT email,
       first_name,
       last_name,
       is_active,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to select user by id: %w", err)
	}

	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user by id")
	return user, nil
}

func (s *userServiceImpl) SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error) {
	user := &models.User{
		ID:        userID,
		IsActive:  isActive,
		UpdatedAt: time.Now(),
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const updateUserActiveQuery = `
UPDATE users
SET is_active = $1,
    updated_at = $2
WHERE id = $3
RETURNING email, first_name, last_name, created_at
`
	err = tx.QueryRow(
		ctx,
		updateUserActiveQuery,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	).Scan(
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user activity: %w", err)
	}

	// Deactivation revokes every session of the user.
	if !user.IsActive {
		const deleteSessionsByUserIDQuery = `
DELETE FROM sessions
       WHERE user_id = $1
`
		tag, err := tx.Exec(
			ctx,
			deleteSessionsByUserIDQuery,
			user.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to delete sessions by user id: %w", err)
		}
		s.logger.Debug().
			Str("user_id", user.ID).
			Int64("affected", tag.RowsAffected()).
			Msg("deleted sessions of deactivated user")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Bool("is_active", user.IsActive).
		Msg("updated user activity")
	return user, nil
}
