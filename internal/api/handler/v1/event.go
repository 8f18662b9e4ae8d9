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

type EventService interface {
	Create(ctx context.Context, actor domain.User, event domain.Event) (domain.Event, error)
	List(ctx context.Context, viewer *domain.User, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error)
	Get(ctx context.Context, viewer *domain.User, id uint) (domain.Event, error)
	Update(ctx context.Context, actor domain.User, id uint, update domain.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
	MyEvents(ctx context.Context, actor domain.User, page domain.Page) ([]domain.Event, int64, error)
	Attendees(ctx context.Context, actor domain.User, id uint) ([]domain.Registration, error)
}

type EventHandler struct {
	svc   EventService
	users UserGetter
}

func NewEventHandler(svc EventService, users UserGetter) *EventHandler {
	return &EventHandler{
		svc:   svc,
		users: users,
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Anonymous callers only see public events.
// @Tags         events
// @Produce      json
// @Param        q         query     string  false  "search in title and description"
// @Param        category  query     string  false  "category"
// @Param        location  query     string  false  "location"
// @Param        date      query     string  false  "events on or after this date"
// @Param        page      query     int     false  "page number"
// @Param        limit     query     int     false  "page size"
// @Success      200       {array}   domain.Event
// @Failure      400       {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	var q request.EventQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	events, total, err := h.svc.List(ctx.Request.Context(), viewer(ctx, h.users), q.ToFilter(), page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListEvents -> h.svc.List -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Events retrieved successfully",
		"events":     events,
		"pagination": page.Paginate(total),
	})
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Organizers and admins only.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreateEvent -> h.svc.Create -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   event,
	})
}

// HandleGetEvent godoc
// @Summary      Get an event with its tickets
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{id} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.Get(ctx.Request.Context(), viewer(ctx, h.users), id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetEvent -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Event retrieved successfully",
		"event":   event,
	})
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "event ID"
// @Param        request  body      request.UpdateEventRequest  true  "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /events/{id} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
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

	var req request.UpdateEventRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateEvent -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully",
		"event":   event,
	})
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "event ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{id} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
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
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeleteEvent -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// HandleMyEvents godoc
// @Summary      List events organized by the caller
// @Tags         events
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {array}   domain.Event
// @Failure      401    {object}  response.Err
// @Router       /events/my-events [get]
// @Security BearerAuth
func (h *EventHandler) HandleMyEvents(ctx *gin.Context) {
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
	events, total, err := h.svc.MyEvents(ctx.Request.Context(), actor, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleMyEvents -> h.svc.MyEvents -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Events retrieved successfully",
		"events":     events,
		"pagination": page.Paginate(total),
	})
}

// HandleGetAttendees godoc
// @Summary      List registrations of an event
// @Description  Organizer of the event or admin.
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "event ID"
// @Success      200  {array}   domain.Registration
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{id}/attendees [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetAttendees(ctx *gin.Context) {
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

	attendees, err := h.svc.Attendees(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetAttendees -> h.svc.Attendees -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Attendees retrieved successfully",
		"attendees": attendees,
	})
}
