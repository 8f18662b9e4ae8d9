package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type UserService interface {
	UserGetter
	List(ctx context.Context, actor domain.User, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error)
	Get(ctx context.Context, actor domain.User, id uint) (domain.User, error)
	Update(ctx context.Context, actor domain.User, id uint, update domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
	Events(ctx context.Context, actor domain.User, id uint, page domain.Page) ([]domain.Event, int64, error)
	Registrations(ctx context.Context, actor domain.User, id uint, page domain.Page) ([]domain.Registration, int64, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleListUsers godoc
// @Summary      List users
// @Description  Admin only. Newest first.
// @Tags         users
// @Produce      json
// @Param        role   query     string  false  "role filter"
// @Param        page   query     int     false  "page number"
// @Param        limit  query     int     false  "page size"
// @Success      200    {array}   domain.User
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /users [get]
// @Security BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var q request.ListUsersQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	users, total, err := h.svc.List(ctx.Request.Context(), actor, domain.UserFilter{Role: domain.Role(q.Role)}, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListUsers -> h.svc.List -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Users retrieved successfully",
		"users":      users,
		"pagination": page.Paginate(total),
	})
}

// HandleGetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "user ID"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /users/{id} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetUser -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"user":    user,
	})
}

// HandleUpdateUser godoc
// @Summary      Update a user
// @Description  Only admins may change roles.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "user ID"
// @Param        request  body      request.UpdateUserRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /users/{id} [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateUserRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateUser -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "user ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /users/{id} [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, id); err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeleteUser -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// HandleGetUserEvents godoc
// @Summary      List events organized by a user
// @Tags         users
// @Produce      json
// @Param        id     path      int  true   "user ID"
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {array}   domain.Event
// @Failure      403    {object}  response.Err
// @Router       /users/{id}/events [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUserEvents(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var q request.PageQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	events, total, err := h.svc.Events(ctx.Request.Context(), actor, id, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetUserEvents -> h.svc.Events -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Events retrieved successfully",
		"events":     events,
		"pagination": page.Paginate(total),
	})
}

// HandleGetUserRegistrations godoc
// @Summary      List registrations of a user
// @Tags         users
// @Produce      json
// @Param        id     path      int  true   "user ID"
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {array}   domain.Registration
// @Failure      403    {object}  response.Err
// @Router       /users/{id}/registrations [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUserRegistrations(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var q request.PageQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	regs, total, err := h.svc.Registrations(ctx.Request.Context(), actor, id, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetUserRegistrations -> h.svc.Registrations -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":       "Registrations retrieved successfully",
		"registrations": regs,
		"pagination":    page.Paginate(total),
	})
}
