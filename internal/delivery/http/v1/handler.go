package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-team-tasks/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)

	HandleAuthMiddleware(c *gin.Context)
	HandleErrorsMiddleware(c *gin.Context)

	HandleCreateUser(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleSetUserActive(c *gin.Context)

	HandleCreateTeam(c *gin.Context)
	HandleGetTeam(c *gin.Context)
	HandleUpdateTeam(c *gin.Context)
	HandleAddTeammate(c *gin.Context)
	HandleGetUsersForTeam(c *gin.Context)
	HandleGetTeamProjects(c *gin.Context)

	HandleCreateProject(c *gin.Context)
	HandleGetProject(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleGetProjectTasks(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
}

type Services struct {
	Auth     services.AuthService
	Sessions services.SessionService
	Users    services.UserService
	Teams    services.TeamService
	Projects services.ProjectService
	Tasks    services.TaskService
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	sessions services.SessionService
	users    services.UserService
	teams    services.TeamService
	projects services.ProjectService
	tasks    services.TaskService
}

func New(logger zerolog.Logger, svc Services) Handler {
	registerValidators()

	return &handlerImpl{
		logger:   logger,
		auth:     svc.Auth,
		sessions: svc.Sessions,
		users:    svc.Users,
		teams:    svc.Teams,
		projects: svc.Projects,
		tasks:    svc.Tasks,
	}
}

// RegisterRoutes mounts the auth endpoints on router and the
// authenticated resource endpoints under /v1.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.Use(h.HandleErrorsMiddleware)

	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/refresh", h.HandleRefresh)
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/logout", h.HandleAuthMiddleware, h.HandleLogout)

	v1Router := router.Group("/v1", h.HandleAuthMiddleware)

	users := v1Router.Group("/users")
	users.POST("", h.HandleCreateUser)
	users.GET("/:id", h.HandleGetUser)
	users.PUT("/:id/active", h.HandleSetUserActive)

	teams := v1Router.Group("/teams")
	teams.POST("", h.HandleCreateTeam)
	teams.GET("/:id", h.HandleGetTeam)
	teams.PUT("/:id", h.HandleUpdateTeam)
	teams.POST("/:id/members", h.HandleAddTeammate)
	teams.GET("/:id/users", h.HandleGetUsersForTeam)
	teams.GET("/:id/projects", h.HandleGetTeamProjects)

	projects := v1Router.Group("/projects")
	projects.POST("", h.HandleCreateProject)
	projects.GET("/:id", h.HandleGetProject)
	projects.PUT("/:id", h.HandleUpdateProject)
	projects.GET("/:id/tasks", h.HandleGetProjectTasks)

	tasks := v1Router.Group("/tasks")
	tasks.POST("", h.HandleCreateTask)
	tasks.GET("/:id", h.HandleGetTask)
	tasks.PUT("/:id", h.HandleUpdateTask)
	tasks.PATCH("/:id/status", h.HandleSetTaskStatus)
}
