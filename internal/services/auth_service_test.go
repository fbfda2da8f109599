package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer      = "go-team-tasks-test"
	testFingerprint = `{"client_ip":"192.0.2.1","user_agent":""}`
)

var testSigningKey = []byte("test-signing-key")

func newTestAuthService(pool PgxPool) *authServiceImpl {
	return NewAuthService(
		zerolog.Nop(),
		pool,
		testIssuer,
		testSigningKey,
		15*time.Minute,
		24*time.Hour,
	).(*authServiceImpl)
}

func testPasswordHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := argon2id.CreateHash(password, &argon2id.Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, err)
	return hash
}

func TestRegister(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectBegin()
	pool.ExpectExec("INSERT INTO users").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec("INSERT INTO sessions").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	result, err := svc.Register(context.Background(), RegisterParams{
		LoginParams: LoginParams{
			Email:       "a@b.com",
			Password:    "x",
			Fingerprint: testFingerprint,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.UserID)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.True(t, result.RefreshTokenExpiresAt.After(result.AccessTokenExpiresAt))

	claims, err := svc.ParseJWTToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, result.SessionID, claims.Subject)
	require.Equal(t, testIssuer, claims.Issuer)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectBegin()
	pool.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	pool.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterParams{
		LoginParams: LoginParams{Email: "a@b.com", Password: "x"},
	})
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash := testPasswordHash(t, "right")

	tests := []struct {
		name     string
		password string
		isActive bool
		wantErr  error
	}{
		{name: "wrong password", password: "wrong", isActive: true, wantErr: ErrUserPasswordMismatch},
		{name: "inactive user", password: "right", isActive: false, wantErr: ErrUserInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			svc := newTestAuthService(pool)

			pool.ExpectQuery("FROM users").
				WithArgs("a@b.com").
				WillReturnRows(pgxmock.NewRows([]string{"id", "password", "is_active"}).
					AddRow("u1", hash, tt.isActive))

			_, err := svc.Login(context.Background(), LoginParams{
				Email:    "a@b.com",
				Password: tt.password,
			})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectQuery("FROM users").
		WithArgs("nobody@b.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Login(context.Background(), LoginParams{
		Email:    "nobody@b.com",
		Password: "x",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginReplacesSessions(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectQuery("FROM users").
		WithArgs("a@b.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password", "is_active"}).
			AddRow("u1", testPasswordHash(t, "right"), true))
	pool.ExpectBegin()
	pool.ExpectExec("DELETE FROM sessions").
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	pool.ExpectExec("INSERT INTO sessions").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	result, err := svc.Login(context.Background(), LoginParams{
		Email:       "a@b.com",
		Password:    "right",
		Fingerprint: testFingerprint,
	})
	require.NoError(t, err)
	require.Equal(t, "u1", result.UserID)
	require.NotEmpty(t, result.AccessToken)
}

func TestRefreshExpiredSession(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectQuery("FROM sessions").
		WithArgs("token", testFingerprint).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at", "is_active"}).
			AddRow("s1", "u1", time.Now().Add(-time.Hour), true))

	_, err := svc.Refresh(context.Background(), RefreshParams{
		RefreshToken: "token",
		Fingerprint:  testFingerprint,
	})
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestRefreshInactiveUser(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectQuery("JOIN users").
		WithArgs("token", testFingerprint).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at", "is_active"}).
			AddRow("s1", "u1", time.Now().Add(time.Hour), false))

	result, err := svc.Refresh(context.Background(), RefreshParams{
		RefreshToken: "token",
		Fingerprint:  testFingerprint,
	})
	require.ErrorIs(t, err, ErrUserInactive)
	require.Nil(t, result)
}

func TestRefresh(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectQuery("JOIN users").
		WithArgs("token", testFingerprint).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at", "is_active"}).
			AddRow("s1", "u1", time.Now().Add(time.Hour), true))
	pool.ExpectExec("UPDATE sessions").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	result, err := svc.Refresh(context.Background(), RefreshParams{
		RefreshToken: "token",
		Fingerprint:  testFingerprint,
	})
	require.NoError(t, err)
	require.Equal(t, "s1", result.SessionID)
	require.NotEqual(t, "token", result.RefreshToken)
}

func TestParseJWTTokenExpired(t *testing.T) {
	svc := NewAuthService(
		zerolog.Nop(),
		nil,
		testIssuer,
		testSigningKey,
		-time.Minute,
		time.Hour,
	).(*authServiceImpl)

	token, _, err := svc.generateAccessToken("s1")
	require.NoError(t, err)

	_, err = svc.ParseJWTToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWTTokenWrongKey(t *testing.T) {
	svc := newTestAuthService(nil)
	token, _, err := svc.generateAccessToken("s1")
	require.NoError(t, err)

	other := newTestAuthService(nil)
	other.jwtSigningKey = []byte("another-key")

	_, err = other.ParseJWTToken(token)
	require.Error(t, err)
	require.True(t, errors.Is(err, jwt.ErrSignatureInvalid) || errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestLogout(t *testing.T) {
	pool := newMockPool(t)
	svc := newTestAuthService(pool)

	pool.ExpectExec("DELETE FROM sessions").
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, svc.Logout(context.Background(), "u1"))
}
