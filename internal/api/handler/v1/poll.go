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

type PollService interface {
	Create(ctx context.Context, actor domain.User, poll domain.Poll) (domain.Poll, error)
	ListByEvent(ctx context.Context, viewer *domain.User, eventID uint) ([]domain.Poll, error)
	Get(ctx context.Context, viewer *domain.User, id uint) (domain.Poll, error)
	Results(ctx context.Context, viewer *domain.User, id uint) (domain.PollResults, error)
	Update(ctx context.Context, actor domain.User, id uint, update domain.PollUpdate) (domain.Poll, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
	Vote(ctx context.Context, actor domain.User, id uint, option string) (domain.Poll, error)
}

type PollHandler struct {
	svc   PollService
	users UserGetter
}

func NewPollHandler(svc PollService, users UserGetter) *PollHandler {
	return &PollHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreatePoll godoc
// @Summary      Create a poll on an event
// @Description  Organizer of the event or admin.
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePollRequest  true  "request body"
// @Success      201      {object}  domain.Poll
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /polls [post]
// @Security BearerAuth
func (h *PollHandler) HandleCreatePoll(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePollRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poll, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreatePoll -> h.svc.Create -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Poll created successfully",
		"poll":    poll,
	})
}

// HandleListEventPolls godoc
// @Summary      List polls of an event
// @Tags         polls
// @Produce      json
// @Param        eventId  path      int  true  "event ID"
// @Success      200      {array}   domain.Poll
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /polls/event/{eventId} [get]
// @Security BearerAuth
func (h *PollHandler) HandleListEventPolls(ctx *gin.Context) {
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

	polls, err := h.svc.ListByEvent(ctx.Request.Context(), &actor, eventID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListEventPolls -> h.svc.ListByEvent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Polls retrieved successfully",
		"polls":   polls,
	})
}

// HandleGetPoll godoc
// @Summary      Get a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "poll ID"
// @Success      200  {object}  domain.Poll
// @Failure      404  {object}  response.Err
// @Router       /polls/{id} [get]
// @Security BearerAuth
func (h *PollHandler) HandleGetPoll(ctx *gin.Context) {
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

	poll, err := h.svc.Get(ctx.Request.Context(), &actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetPoll -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Poll retrieved successfully",
		"poll":    poll,
	})
}

// HandlePollResults godoc
// @Summary      Vote counts of a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "poll ID"
// @Success      200  {object}  domain.PollResults
// @Failure      404  {object}  response.Err
// @Router       /polls/{id}/results [get]
// @Security BearerAuth
func (h *PollHandler) HandlePollResults(ctx *gin.Context) {
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

	results, err := h.svc.Results(ctx.Request.Context(), &actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandlePollResults -> h.svc.Results -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Poll results retrieved successfully",
		"results": results,
	})
}

// HandleUpdatePoll godoc
// @Summary      Update a poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "poll ID"
// @Param        request  body      request.UpdatePollRequest  true  "request body"
// @Success      200      {object}  domain.Poll
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /polls/{id} [put]
// @Security BearerAuth
func (h *PollHandler) HandleUpdatePoll(ctx *gin.Context) {
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

	var req request.UpdatePollRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poll, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdatePoll -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Poll updated successfully",
		"poll":    poll,
	})
}

// HandleDeletePoll godoc
// @Summary      Delete a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "poll ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /polls/{id} [delete]
// @Security BearerAuth
func (h *PollHandler) HandleDeletePoll(ctx *gin.Context) {
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
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeletePoll -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Poll deleted successfully",
	})
}

// HandleVote godoc
// @Summary      Vote on a poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "poll ID"
// @Param        request  body      request.VoteRequest  true  "request body"
// @Success      200      {object}  domain.Poll
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /polls/{id}/vote [post]
// @Security BearerAuth
func (h *PollHandler) HandleVote(ctx *gin.Context) {
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

	var req request.VoteRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poll, err := h.svc.Vote(ctx.Request.Context(), actor, id, req.Option)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleVote -> h.svc.Vote -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Vote recorded successfully",
		"poll":    poll,
	})
}
