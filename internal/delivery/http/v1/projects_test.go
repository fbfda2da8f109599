package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-team-tasks/internal/models"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

const testTeamID = "0198c2a0-5555-7000-8000-000000000005"

func testProject() *models.Project {
	return &models.Project{
		ID:        testProjectID,
		Name:      "roadmap",
		Status:    models.StatusTodo,
		TeamID:    testTeamID,
		CreatedBy: testUserID,
		CreatedAt: time.Now(),
	}
}

func TestHandleCreateProject(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("CreateProject", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
		return p.Name == "roadmap" && p.TeamID == testTeamID && p.CreatedBy == testUserID
	})).Return(testProject(), nil).Once()

	rec := env.do(t, http.MethodPost, "/v1/projects", gin.H{
		"name":    "roadmap",
		"team_id": testTeamID,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, testProjectID, decodeBody[getProjectResponse](t, rec).ID)
}

func TestHandleCreateProjectEmptyName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/projects", gin.H{
		"name":    "",
		"team_id": testTeamID,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "name is required", decodeBody[map[string]string](t, rec)["error"])
	env.projects.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestHandleCreateProjectBlankName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/projects", gin.H{
		"name":    "   ",
		"team_id": testTeamID,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "name must not be blank", decodeBody[map[string]string](t, rec)["error"])
	env.projects.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestHandleCreateProjectUnknownTeam(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("CreateProject", mock.Anything, mock.Anything).
		Return(nil, services.ErrTeamNotFound).
		Once()

	rec := env.do(t, http.MethodPost, "/v1/projects", gin.H{
		"name":    "roadmap",
		"team_id": testTeamID,
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "team not found", decodeBody[map[string]string](t, rec)["error"])
	require.Equal(t, 1, env.errorLogCount())
}

func TestHandleUpdateProject(t *testing.T) {
	env := newTestEnv(t)
	status := models.StatusInProgress
	env.projects.On("UpdateProject", mock.Anything, services.UpdateProjectParams{
		ID:     testProjectID,
		Status: &status,
	}).Return(testProject(), nil).Once()

	rec := env.do(t, http.MethodPut, "/v1/projects/"+testProjectID, gin.H{"status": "in_progress"})

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleUpdateProjectRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", " \n "} {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPut, "/v1/projects/"+testProjectID, gin.H{"name": name})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "name must not be blank", decodeBody[map[string]string](t, rec)["error"])
		env.projects.AssertNotCalled(t, "UpdateProject", mock.Anything, mock.Anything)
		require.Zero(t, env.errorLogCount())
	}
}

func TestHandleGetProjectTasks(t *testing.T) {
	env := newTestEnv(t)
	env.tasks.On("GetTasksByProjectID", mock.Anything, testProjectID, uint32(10), uint32(5)).
		Return([]*models.Task{testTask()}, nil).
		Once()

	rec := env.do(t, http.MethodGet, "/v1/projects/"+testProjectID+"/tasks?offset=10&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decodeBody[[]getTaskResponse](t, rec)
	require.Len(t, tasks, 1)
	require.Equal(t, testTaskID, tasks[0].ID)
}

func TestHandleGetTeamProjectsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("GetProjectsByTeamID", mock.Anything, testTeamID).
		Return([]*models.Project{}, nil).
		Once()

	rec := env.do(t, http.MethodGet, "/v1/teams/"+testTeamID+"/projects", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleGetTeamProjectsUnknownTeam(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("GetProjectsByTeamID", mock.Anything, testTeamID).
		Return(nil, services.ErrTeamNotFound).
		Once()

	rec := env.do(t, http.MethodGet, "/v1/teams/"+testTeamID+"/projects", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "team not found", decodeBody[map[string]string](t, rec)["error"])
	require.Equal(t, 1, env.errorLogCount())
}

func TestHandleGetProjectTasksUnknownProject(t *testing.T) {
	env := newTestEnv(t)
	env.tasks.On("GetTasksByProjectID", mock.Anything, testProjectID, uint32(0), uint32(0)).
		Return(nil, services.ErrProjectNotFound).
		Once()

	rec := env.do(t, http.MethodGet, "/v1/projects/"+testProjectID+"/tasks", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "project not found", decodeBody[map[string]string](t, rec)["error"])
	require.Equal(t, 1, env.errorLogCount())
}
