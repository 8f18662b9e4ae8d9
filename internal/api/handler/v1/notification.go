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

type NotificationService interface {
	Create(ctx context.Context, actor domain.User, n domain.Notification, targets []uint) ([]domain.Notification, error)
	List(ctx context.Context, actor domain.User, filter domain.NotificationFilter, page domain.Page) ([]domain.Notification, int64, error)
	UnreadCount(ctx context.Context, actor domain.User) (int64, error)
	Get(ctx context.Context, actor domain.User, id uint) (domain.Notification, error)
	MarkRead(ctx context.Context, actor domain.User, id uint) (domain.Notification, error)
	MarkAllRead(ctx context.Context, actor domain.User) (int64, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
}

type NotificationHandler struct {
	svc   NotificationService
	users UserGetter
}

func NewNotificationHandler(svc NotificationService, users UserGetter) *NotificationHandler {
	return &NotificationHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreateNotification godoc
// @Summary      Notify attendees of an event
// @Description  Without targetUsers a single broadcast is stored.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateNotificationRequest  true  "request body"
// @Success      201      {array}   domain.Notification
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /notifications [post]
// @Security BearerAuth
func (h *NotificationHandler) HandleCreateNotification(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateNotificationRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	notifications, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDomain(), req.TargetUsers)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreateNotification -> h.svc.Create -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":       "Notification created successfully",
		"notifications": notifications,
	})
}

// HandleListNotifications godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Param        isRead  query     bool    false  "read filter"
// @Param        type    query     string  false  "type filter"
// @Param        page    query     int     false  "page number"
// @Param        limit   query     int     false  "page size"
// @Success      200     {array}   domain.Notification
// @Failure      400     {object}  response.Err
// @Router       /notifications [get]
// @Security BearerAuth
func (h *NotificationHandler) HandleListNotifications(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var q request.NotificationQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	notifications, total, err := h.svc.List(ctx.Request.Context(), actor, q.ToFilter(), page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListNotifications -> h.svc.List -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":       "Notifications retrieved successfully",
		"notifications": notifications,
		"pagination":    page.Paginate(total),
	})
}

// HandleUnreadCount godoc
// @Summary      Number of unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /notifications/unread-count [get]
// @Security BearerAuth
func (h *NotificationHandler) HandleUnreadCount(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.UnreadCount(ctx.Request.Context(), actor)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUnreadCount -> h.svc.UnreadCount -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Unread count retrieved successfully",
		"unreadCount": count,
	})
}

// HandleGetNotification godoc
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /notifications/{id} [get]
// @Security BearerAuth
func (h *NotificationHandler) HandleGetNotification(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	n, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetNotification -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Notification retrieved successfully",
		"notification": n,
	})
}

// HandleMarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /notifications/{id}/read [put]
// @Security BearerAuth
func (h *NotificationHandler) HandleMarkRead(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	n, err := h.svc.MarkRead(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkRead -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Notification marked as read",
		"notification": n,
	})
}

// HandleMarkAllRead godoc
// @Summary      Mark all of the caller's notifications as read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /notifications/read-all [put]
// @Security BearerAuth
func (h *NotificationHandler) HandleMarkAllRead(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	updated, err := h.svc.MarkAllRead(ctx.Request.Context(), actor)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleMarkAllRead -> h.svc.MarkAllRead -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "All notifications marked as read",
		"updatedCount": updated,
	})
}

// HandleDeleteNotification godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "notification ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /notifications/{id} [delete]
// @Security BearerAuth
func (h *NotificationHandler) HandleDeleteNotification(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
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
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeleteNotification -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Notification deleted successfully",
	})
}
