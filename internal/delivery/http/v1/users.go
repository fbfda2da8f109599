package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/models"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

type getUserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGetUserResponse(user *models.User) getUserResponse {
	return getUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type createUserRequest struct {
	Email     string  `json:"email" binding:"required,email,max=255"`
	Password  string  `json:"password" binding:"required,max=255"`
	FirstName *string `json:"first_name" binding:"omitempty,notblank,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,notblank,max=255"`
}

type createUserResponse struct {
	Created bool `json:"created"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	if !h.bind(c, &req) {
		return
	}

	created, err := h.users.CreateUser(c, services.CreateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	if !created {
		abort(c, newConflictError(services.ErrUserAlreadyExists.Error()))
		return
	}

	c.JSON(http.StatusCreated, createUserResponse{Created: created})
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	userID, ok := h.bindID(c)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(c, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetUserResponse(user))
}

type setUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *handlerImpl) HandleSetUserActive(c *gin.Context) {
	userID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req setUserActiveRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.users.SetUserActive(c, userID, *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetUserResponse(user))
}
