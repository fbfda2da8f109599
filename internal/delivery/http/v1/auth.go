package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/services"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

type authResult struct {
	Success      bool       `json:"success"`
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Error        string     `json:"error,omitempty"`
}

func newAuthResult(result *services.LoginResult) authResult {
	return authResult{
		Success:      true,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    &result.AccessTokenExpiresAt,
	}
}

func newFailedAuthResult(err error) authResult {
	return authResult{
		Success: false,
		Error:   err.Error(),
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:       req.Email,
		Password:    req.Password,
		Fingerprint: fingerprint,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch),
			errors.Is(err, services.ErrUserInactive):
			h.logger.Info().
				Err(err).
				Str("email", req.Email).
				Msg("login rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, newFailedAuthResult(err))
		default:
			fail(c, err)
		}
		return
	}

	setTokenCookies(c, result)
	c.JSON(http.StatusOK, newAuthResult(result))
}

func (h *handlerImpl) HandleRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to get refresh token cookie")
		abort(c, newBadRequestError(errMandatoryCookieNotFound.Error()))
		return
	}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.auth.Refresh(c, services.RefreshParams{
		RefreshToken: refreshToken,
		Fingerprint:  fingerprint,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound),
			errors.Is(err, services.ErrSessionExpired),
			errors.Is(err, services.ErrUserInactive):
			h.logger.Info().
				Err(err).
				Msg("refresh rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, newFailedAuthResult(err))
		default:
			fail(c, err)
		}
		return
	}

	setTokenCookies(c, result)
	c.JSON(http.StatusOK, newAuthResult(result))
}

type registerRequest struct {
	loginRequest
	FirstName *string `json:"first_name" binding:"omitempty,notblank,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,notblank,max=255"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.auth.Register(c, services.RegisterParams{
		LoginParams: services.LoginParams{
			Email:       req.Email,
			Password:    req.Password,
			Fingerprint: fingerprint,
		},
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			h.logger.Info().
				Str("email", req.Email).
				Msg("register rejected")
			c.AbortWithStatusJSON(http.StatusConflict, newFailedAuthResult(err))
			return
		}
		fail(c, err)
		return
	}

	h.logger.Info().
		Str("user_id", result.UserID).
		Msg("registered user")

	setTokenCookies(c, result)
	c.JSON(http.StatusOK, newAuthResult(result))
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	userID, _ := getStringFromContext(c, userIDCtxKey)

	err := h.auth.Logout(c, userID)
	if err != nil {
		fail(c, err)
		return
	}

	clearCookie(c, accessTokenCookie)
	clearCookie(c, refreshTokenCookie)

	c.Status(http.StatusNoContent)
}

func generateFingerprint(c *gin.Context) (string, error) {
	fingerprintBytes, err := json.Marshal(map[string]string{
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal fingerprint: %w", err)
	}
	return string(fingerprintBytes), nil
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

func setTokenCookies(c *gin.Context, result *services.LoginResult) {
	now := time.Now()
	setAccessTokenCookie(c, result.AccessToken, result.AccessTokenExpiresAt.Sub(now))
	setRefreshTokenCookie(c, result.RefreshToken, result.RefreshTokenExpiresAt.Sub(now))
}

func setAccessTokenCookie(c *gin.Context, token string, maxAge time.Duration) {
	// Readable by client scripts so they can send it as a bearer token.
	const secure, httpOnly = false, false
	c.SetCookie(accessTokenCookie, token, int(maxAge.Seconds()),
		"/", "", secure, httpOnly)
}

func setRefreshTokenCookie(c *gin.Context, token string, maxAge time.Duration) {
	const secure, httpOnly = false, true
	c.SetCookie(refreshTokenCookie, token, int(maxAge.Seconds()),
		"/", "", secure, httpOnly)
}

func clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1,
		"/", "", false, false)
}
