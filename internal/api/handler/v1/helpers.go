package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

// UserGetter resolves the token subject to a stored user, so role changes
// and deletions take effect before the token expires.
type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

func currentUserID(ctx *gin.Context) (uint, *response.Err) {
	id, ok := ctx.Get(middleware.ContextUserID)
	if !ok {
		return 0, response.ErrUnauthorized("Access token required", "Please provide a valid access token")
	}

	userID, ok := id.(uint)
	if !ok {
		return 0, response.ErrInternalServerError(fmt.Errorf("unexpected user id type %T", id))
	}

	return userID, nil
}

func getUserFromContext(ctx *gin.Context, users UserGetter) (domain.User, *response.Err) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		return domain.User{}, respErr
	}

	user, err := users.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The token outlived its account.
			err = domain.ErrInvalidToken
		}

		return domain.User{}, response.FromError(fmt.Errorf("getUserFromContext -> users.GetUser -> %w", err))
	}

	return user, nil
}

// viewer returns the caller on routes where authentication is optional.
// An unknown or deleted token subject is treated as anonymous.
func viewer(ctx *gin.Context, users UserGetter) *domain.User {
	if _, ok := ctx.Get(middleware.ContextUserID); !ok {
		return nil
	}

	user, respErr := getUserFromContext(ctx, users)
	if respErr != nil {
		return nil
	}

	return &user
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrInvalidID(param)
	}

	return uint(id), nil
}

// bindJSON decodes and validates a request body.
func bindJSON(ctx *gin.Context, req interface{ Validate() error }) *response.Err {
	if err := ctx.ShouldBindJSON(req); err != nil {
		return response.ErrBadRequest(err)
	}
	if err := req.Validate(); err != nil {
		return response.ErrBadRequest(err)
	}

	return nil
}

func bindQuery(ctx *gin.Context, q interface{ Validate() error }) *response.Err {
	if err := ctx.ShouldBindQuery(q); err != nil {
		return response.ErrBadRequest(err)
	}
	if err := q.Validate(); err != nil {
		return response.ErrBadRequest(err)
	}

	return nil
}
