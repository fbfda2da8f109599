package v1

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/services"
)

const (
	userIDCtxKey    = "user_id"
	sessionIDCtxKey = "session_id"
)

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Debug().Msg("authorization header required")
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Debug().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}

	claims, err := h.auth.ParseJWTToken(parts[1])
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to parse token")
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}

	session, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			abort(c, newUnauthorizedError(errUnauthenticated.Error()))
			return
		}
		fail(c, err)
		return
	}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		fail(c, err)
		return
	}

	if fingerprint != session.Fingerprint {
		h.logger.Warn().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionIDCtxKey, session.ID)
	c.Next()
}
