package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-team-tasks/internal/models"
)

const (
	testAccessToken = "test-access-token"
	testSessionID   = "0198c2a0-1111-7000-8000-000000000001"
	testUserID      = "0198c2a0-2222-7000-8000-000000000002"
)

type testEnv struct {
	router   *gin.Engine
	logs     *bytes.Buffer
	auth     *mockAuthService
	sessions *mockSessionService
	users    *mockUserService
	teams    *mockTeamService
	projects *mockProjectService
	tasks    *mockTaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		logs:     new(bytes.Buffer),
		auth:     new(mockAuthService),
		sessions: new(mockSessionService),
		users:    new(mockUserService),
		teams:    new(mockTeamService),
		projects: new(mockProjectService),
		tasks:    new(mockTaskService),
	}

	h := New(zerolog.New(env.logs), Services{
		Auth:     env.auth,
		Sessions: env.sessions,
		Users:    env.users,
		Teams:    env.teams,
		Projects: env.projects,
		Tasks:    env.tasks,
	})
	env.router = gin.New()
	RegisterRoutes(env.router, h)

	env.auth.On("ParseJWTToken", testAccessToken).
		Return(&jwt.RegisteredClaims{Subject: testSessionID}, nil).
		Maybe()
	env.sessions.On("GetSessionByID", mock.Anything, testSessionID).
		Return(&models.Session{
			ID:          testSessionID,
			UserID:      testUserID,
			Fingerprint: testFingerprint(t),
		}, nil).
		Maybe()

	t.Cleanup(func() {
		mock.AssertExpectationsForObjects(t,
			env.auth, env.sessions, env.users, env.teams, env.projects, env.tasks)
	})
	return env
}

// testFingerprint is the fingerprint of a default httptest request.
func testFingerprint(t *testing.T) string {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fingerprint, err := generateFingerprint(c)
	require.NoError(t, err)
	return fingerprint
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAccessToken)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) errorLogCount() int {
	return strings.Count(e.logs.String(), `"level":"error"`)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func ptr[T any](v T) *T {
	return &v
}
