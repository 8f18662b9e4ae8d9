package response

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

// Err is the body of every failed request.
type Err struct {
	HTTPStatusCode int               `json:"-"`
	Code           string            `json:"error"`
	Message        string            `json:"message"`
	Details        map[string]string `json:"details,omitempty"`

	cause error
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.cause),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

var kindStatus = []struct {
	kind   error
	status int
}{
	{domain.ErrInvalid, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
}

// FromError renders a domain error with its own code and message. Anything
// else is an internal error and its text is not shown to the client.
func FromError(err error) *Err {
	var de *domain.Error
	if !errors.As(err, &de) {
		return ErrInternalServerError(err)
	}

	for _, ks := range kindStatus {
		if errors.Is(de.Kind, ks.kind) {
			return &Err{
				HTTPStatusCode: ks.status,
				Code:           de.Code,
				Message:        de.Message,
				cause:          err,
			}
		}
	}

	return ErrInternalServerError(err)
}

// ErrBadRequest reports malformed input. ozzo validation errors are listed
// per field in details.
func ErrBadRequest(err error) *Err {
	e := &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Code:           domain.ErrValidation.Code,
		Message:        domain.ErrValidation.Message,
		cause:          err,
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		e.Details = make(map[string]string, len(fields))
		for field, fieldErr := range fields {
			e.Details[field] = fieldErr.Error()
		}

		return e
	}
	if err != nil {
		e.Message = err.Error()
	}

	return e
}

func ErrInvalidID(name string) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Code:           "Invalid ID",
		Message:        "The " + name + " must be a positive integer",
	}
}

func ErrUnauthorized(code, message string) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Code:           code,
		Message:        message,
	}
}

func ErrTooManyRequests() *Err {
	return &Err{
		HTTPStatusCode: http.StatusTooManyRequests,
		Code:           "Too many requests",
		Message:        "Too many requests. Please try again later.",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Code:           "Internal server error",
		Message:        "Something went wrong",
		cause:          err,
	}
}

// AuthResponse is returned by every endpoint that issues a token.
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}
