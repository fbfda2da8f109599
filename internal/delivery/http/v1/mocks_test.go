package v1

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"github.com/adanyl0v/go-team-tasks/internal/models"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, params services.LoginParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, params services.RefreshParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Register(ctx context.Context, params services.RegisterParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuthService) ParseJWTToken(token string) (*jwt.RegisteredClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*jwt.RegisteredClaims)
	return claims, args.Error(1)
}

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, params services.CreateUserParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserService) SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error) {
	args := m.Called(ctx, userID, isActive)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockTeamService struct {
	mock.Mock
}

func (m *mockTeamService) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	args := m.Called(ctx, team)
	created, _ := args.Get(0).(*models.Team)
	return created, args.Error(1)
}

func (m *mockTeamService) GetTeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	team, _ := args.Get(0).(*models.Team)
	return team, args.Error(1)
}

func (m *mockTeamService) UpdateTeam(ctx context.Context, params services.UpdateTeamParams) (*models.Team, error) {
	args := m.Called(ctx, params)
	team, _ := args.Get(0).(*models.Team)
	return team, args.Error(1)
}

func (m *mockTeamService) AddTeammate(ctx context.Context, teammate *models.Teammate) (*models.Teammate, error) {
	args := m.Called(ctx, teammate)
	added, _ := args.Get(0).(*models.Teammate)
	return added, args.Error(1)
}

func (m *mockTeamService) GetUsersForTeam(ctx context.Context, teamID string) ([]*models.TeamUser, error) {
	args := m.Called(ctx, teamID)
	users, _ := args.Get(0).([]*models.TeamUser)
	return users, args.Error(1)
}

type mockProjectService struct {
	mock.Mock
}

func (m *mockProjectService) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	args := m.Called(ctx, project)
	created, _ := args.Get(0).(*models.Project)
	return created, args.Error(1)
}

func (m *mockProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Error(1)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, params services.UpdateProjectParams) (*models.Project, error) {
	args := m.Called(ctx, params)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Error(1)
}

func (m *mockProjectService) GetProjectsByTeamID(ctx context.Context, teamID string) ([]*models.Project, error) {
	args := m.Called(ctx, teamID)
	projects, _ := args.Get(0).([]*models.Project)
	return projects, args.Error(1)
}

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(*models.Task)
	return created, args.Error(1)
}

func (m *mockTaskService) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	args := m.Called(ctx, taskID)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, params)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) UpdateTaskStatus(ctx context.Context, params services.UpdateTaskStatusParams) (*models.Task, error) {
	args := m.Called(ctx, params)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) GetTasksByProjectID(ctx context.Context, projectID string, offset, limit uint32) ([]*models.Task, error) {
	args := m.Called(ctx, projectID, offset, limit)
	tasks, _ := args.Get(0).([]*models.Task)
	return tasks, args.Error(1)
}
