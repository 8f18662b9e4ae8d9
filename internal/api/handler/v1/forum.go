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

type ForumService interface {
	Create(ctx context.Context, actor domain.User, eventID uint, content string) (domain.Post, error)
	Reply(ctx context.Context, actor domain.User, parentID uint, content string) (domain.Post, error)
	ListByEvent(ctx context.Context, viewer *domain.User, eventID uint, page domain.Page) ([]domain.Post, int64, error)
	MyPosts(ctx context.Context, actor domain.User, page domain.Page) ([]domain.Post, int64, error)
	Get(ctx context.Context, viewer *domain.User, id uint) (domain.Post, error)
	Update(ctx context.Context, actor domain.User, id uint, content string) (domain.Post, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
}

type ForumHandler struct {
	svc   ForumService
	users UserGetter
}

func NewForumHandler(svc ForumService, users UserGetter) *ForumHandler {
	return &ForumHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreatePost godoc
// @Summary      Start a forum thread on an event
// @Tags         forums
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePostRequest  true  "request body"
// @Success      201      {object}  domain.Post
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /forums [post]
// @Security BearerAuth
func (h *ForumHandler) HandleCreatePost(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePostRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	post, err := h.svc.Create(ctx.Request.Context(), actor, req.EventID, req.Content)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreatePost -> h.svc.Create -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Forum post created successfully",
		"post":    post,
	})
}

// HandleReply godoc
// @Summary      Reply to a forum post
// @Tags         forums
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "parent post ID"
// @Param        request  body      request.PostContentRequest  true  "request body"
// @Success      201      {object}  domain.Post
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /forums/{id}/reply [post]
// @Security BearerAuth
func (h *ForumHandler) HandleReply(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	parentID, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PostContentRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reply, err := h.svc.Reply(ctx.Request.Context(), actor, parentID, req.Content)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleReply -> h.svc.Reply -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Reply created successfully",
		"post":    reply,
	})
}

// HandleListEventPosts godoc
// @Summary      List forum threads of an event
// @Description  Top-level posts, newest first, each with its nested replies.
// @Tags         forums
// @Produce      json
// @Param        eventId  path      int  true   "event ID"
// @Param        page     query     int  false  "page number"
// @Param        limit    query     int  false  "page size"
// @Success      200      {array}   domain.Post
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /forums/event/{eventId} [get]
// @Security BearerAuth
func (h *ForumHandler) HandleListEventPosts(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseID(ctx, "eventId")
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
	posts, total, err := h.svc.ListByEvent(ctx.Request.Context(), &actor, eventID, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListEventPosts -> h.svc.ListByEvent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Forum posts retrieved successfully",
		"posts":      posts,
		"pagination": page.Paginate(total),
	})
}

// HandleMyPosts godoc
// @Summary      List the caller's forum posts
// @Tags         forums
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {array}   domain.Post
// @Router       /forums/my-posts [get]
// @Security BearerAuth
func (h *ForumHandler) HandleMyPosts(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
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
	posts, total, err := h.svc.MyPosts(ctx.Request.Context(), actor, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleMyPosts -> h.svc.MyPosts -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Forum posts retrieved successfully",
		"posts":      posts,
		"pagination": page.Paginate(total),
	})
}

// HandleGetPost godoc
// @Summary      Get a forum post with its replies
// @Tags         forums
// @Produce      json
// @Param        id   path      int  true  "post ID"
// @Success      200  {object}  domain.Post
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /forums/{id} [get]
// @Security BearerAuth
func (h *ForumHandler) HandleGetPost(ctx *gin.Context) {
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

	post, err := h.svc.Get(ctx.Request.Context(), &actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetPost -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Forum post retrieved successfully",
		"post":    post,
	})
}

// HandleUpdatePost godoc
// @Summary      Edit a forum post
// @Tags         forums
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "post ID"
// @Param        request  body      request.PostContentRequest  true  "request body"
// @Success      200      {object}  domain.Post
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /forums/{id} [put]
// @Security BearerAuth
func (h *ForumHandler) HandleUpdatePost(ctx *gin.Context) {
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

	var req request.PostContentRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	post, err := h.svc.Update(ctx.Request.Context(), actor, id, req.Content)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdatePost -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Forum post updated successfully",
		"post":    post,
	})
}

// HandleDeletePost godoc
// @Summary      Delete a forum post and its replies
// @Tags         forums
// @Produce      json
// @Param        id   path      int  true  "post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /forums/{id} [delete]
// @Security BearerAuth
func (h *ForumHandler) HandleDeletePost(ctx *gin.Context) {
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
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeletePost -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Forum post deleted successfully",
	})
}
