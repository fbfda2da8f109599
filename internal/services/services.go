package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-team-tasks/internal/models"
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist, ErrUserPasswordMismatch if the
	// given password doesn't match the user's password or
	// ErrUserInactive if the user has been deactivated.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist, ErrUserInactive if its
	// user has been deactivated or ErrSessionExpired if the
	// session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	// GetSessionByID returns ErrSessionNotFound for unknown sessions
	// and for sessions of deactivated users.
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type UserService interface {
	// CreateUser inserts a user unless one with the same email exists.
	// It reports whether a row was inserted.
	CreateUser(ctx context.Context, params CreateUserParams) (bool, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// SetUserActive deletes the user's sessions when deactivating.
	SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error)
}

type TeamService interface {
	// CreateTeam inserts the team and adds its owner as an admin.
	CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error)
	GetTeamByID(ctx context.Context, teamID string) (*models.Team, error)
	UpdateTeam(ctx context.Context, params UpdateTeamParams) (*models.Team, error)
	// AddTeammate adds the user to the team or changes the role
	// of an existing member.
	AddTeammate(ctx context.Context, teammate *models.Teammate) (*models.Teammate, error)
	GetUsersForTeam(ctx context.Context, teamID string) ([]*models.TeamUser, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*models.Project, error)
	UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error)
	// GetProjectsByTeamID returns ErrTeamNotFound when the team does not exist.
	GetProjectsByTeamID(ctx context.Context, teamID string) ([]*models.Project, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	GetTaskByID(ctx context.Context, taskID string) (*models.Task, error)
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error)
	// GetTasksByProjectID returns ErrProjectNotFound when the project does not exist.
	GetTasksByProjectID(ctx context.Context, projectID string, offset, limit uint32) ([]*models.Task, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type RegisterParams struct {
	LoginParams
	FirstName *string
	LastName  *string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateUserParams struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// Nil fields of the update params are left unchanged.

type UpdateTeamParams struct {
	ID          string
	Name        *string
	Description *string
	OwnerID     *string
}

type UpdateProjectParams struct {
	ID          string
	Name        *string
	Description *string
	Status      *models.Status
	TeamID      *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type UpdateTaskParams struct {
	ID             string
	Title          *string
	Description    *string
	Status         *models.Status
	Priority       *models.Priority
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	AssigneeID     *string
}

type UpdateTaskStatusParams struct {
	ID     string
	Status models.Status
}
