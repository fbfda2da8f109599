package v1

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-team-tasks/internal/services"
)

var (
	errInvalidRequestBody      = errors.New("invalid request body")
	errMandatoryCookieNotFound = errors.New("mandatory cookie not found")
	errUnauthenticated         = errors.New("unauthenticated")
)

// kindStatuses maps every services.Kind to a response status.
var kindStatuses = [...]int{
	services.KindInternal: http.StatusInternalServerError,
	services.KindNotFound: http.StatusNotFound,
}

// Fails to compile unless kindStatuses has exactly one entry per kind.
var (
	_ [int(services.NumKinds) - len(kindStatuses)]struct{}
	_ [len(kindStatuses) - int(services.NumKinds)]struct{}
)

func statusForError(err error) int {
	return kindStatuses[services.KindOf(err)]
}

type apiError struct {
	Code    int
	Message string
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// fail hands err over to HandleErrorsMiddleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// recoveredPanic is a handler panic turned into an error.
type recoveredPanic struct {
	value any
	stack []byte
}

func (p *recoveredPanic) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

func (p *recoveredPanic) Unwrap() error {
	err, _ := p.value.(error)
	return err
}

// HandleErrorsMiddleware writes the last error attached by a handler
// as {"error": message} with the status of its kind. Panics raised
// further down the chain are reported the same way.
func (h *handlerImpl) HandleErrorsMiddleware(c *gin.Context) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if r == http.ErrAbortHandler {
			panic(r)
		}
		_ = c.Error(&recoveredPanic{value: r, stack: debug.Stack()})
		c.Abort()
		h.writeLastError(c)
	}()

	c.Next()
	h.writeLastError(c)
}

func (h *handlerImpl) writeLastError(c *gin.Context) {
	last := c.Errors.Last()
	if last == nil {
		return
	}

	status := statusForError(last.Err)
	event := h.logger.Error().
		Err(last.Err).
		Str("request_id", c.GetString(requestIDCtxKey)).
		Str("kind", services.KindOf(last.Err).String()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status)

	var p *recoveredPanic
	if errors.As(last.Err, &p) {
		event = event.Bytes("stack", p.stack)
	}
	event.Msg("request failed")

	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": last.Err.Error()})
}
