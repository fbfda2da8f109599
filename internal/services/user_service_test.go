package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		inserted int64
		want     bool
	}{
		{name: "row inserted", inserted: 1, want: true},
		{name: "email taken", inserted: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			svc := NewUserService(zerolog.Nop(), pool)

			pool.ExpectExec("INSERT INTO users").
				WillReturnResult(pgxmock.NewResult("INSERT", tt.inserted))

			created, err := svc.CreateUser(context.Background(), CreateUserParams{
				Email:     "a@b.com",
				Password:  "x",
				FirstName: ptr("Ann"),
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, created)
		})
	}
}

func TestCreateUserDatabaseError(t *testing.T) {
	pool := newMockPool(t)
	svc := NewUserService(zerolog.Nop(), pool)

	dbErr := errors.New("connection refused")
	pool.ExpectExec("INSERT INTO users").WillReturnError(dbErr)

	created, err := svc.CreateUser(context.Background(), CreateUserParams{
		Email:    "a@b.com",
		Password: "x",
	})
	require.ErrorIs(t, err, dbErr)
	require.False(t, created)
	require.Equal(t, KindInternal, KindOf(err))
}

func TestGetUserByID(t *testing.T) {
	pool := newMockPool(t)
	svc := NewUserService(zerolog.Nop(), pool)

	now := time.Now()
	pool.ExpectQuery("FROM users").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{
			"email", "first_name", "last_name", "is_active", "created_at", "updated_at",
		}).AddRow("a@b.com", ptr("Ann"), (*string)(nil), true, now, now))

	user, err := svc.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, "Ann", *user.FirstName)
	require.Nil(t, user.LastName)
	require.True(t, user.IsActive)
}

func TestGetUserByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	svc := NewUserService(zerolog.Nop(), pool)

	pool.ExpectQuery("FROM users").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetUserByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestSetUserActiveNotFound(t *testing.T) {
	pool := newMockPool(t)
	svc := NewUserService(zerolog.Nop(), pool)

	pool.ExpectBegin()
	pool.ExpectQuery("UPDATE users").
		WillReturnError(pgx.ErrNoRows)
	pool.ExpectRollback()

	_, err := svc.SetUserActive(context.Background(), "missing", false)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetUserActiveFalseRevokesSessions(t *testing.T) {
	pool := newMockPool(t)
	svc := NewUserService(zerolog.Nop(), pool)

	pool.ExpectBegin()
	pool.ExpectQuery("UPDATE users").
		WithArgs(false, pgxmock.AnyArg(), "u1").
		WillReturnRows(pgxmock.NewRows([]string{"email", "first_name", "last_name", "created_at"}).
			AddRow("a@b.com", (*string)(nil), (*string)(nil), time.Now()))
	pool.ExpectExec("DELETE FROM sessions").
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	pool.ExpectCommit()

	user, err := svc.SetUserActive(context.Background(), "u1", false)
	require.NoError(t, err)
	require.False(t, user.IsActive)
}

func TestSetUserActiveTrueKeepsSessions(t *testing.T) {
	pool := newMockPool(t)
	svc := NewUserService(zerolog.Nop(), pool)

	pool.ExpectBegin()
	pool.ExpectQuery("UPDATE users").
		WithArgs(true, pgxmock.AnyArg(), "u1").
		WillReturnRows(pgxmock.NewRows([]string{"email", "first_name", "last_name", "created_at"}).
			AddRow("a@b.com", (*string)(nil), (*string)(nil), time.Now()))
	pool.ExpectCommit()

	user, err := svc.SetUserActive(context.Background(), "u1", true)
	require.NoError(t, err)
	require.True(t, user.IsActive)
}
