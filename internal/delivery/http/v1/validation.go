package v1

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the notblank tag and makes validation errors
// refer to fields by their json (or uri) names instead of the Go struct
// field names.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "uri", "form"} {
				name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}

func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errInvalidRequestBody.Error()
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldErrorMessage(fieldErr))
	}
	return strings.Join(messages, "; ")
}

func fieldErrorMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// bind decodes the request body into req and aborts with 400 on failure.
func (h *handlerImpl) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(bindingErrorMessage(err)))
		return false
	}
	return true
}

type idURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// bindID reads the :id path parameter and aborts with 400 unless it is a uuid.
func (h *handlerImpl) bindID(c *gin.Context) (string, bool) {
	var uri idURI
	err := c.ShouldBindUri(&uri)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind uri")
		abort(c, newBadRequestError(bindingErrorMessage(err)))
		return "", false
	}
	return uri.ID, true
}
