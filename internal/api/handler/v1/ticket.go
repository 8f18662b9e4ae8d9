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

type TicketService interface {
	Create(ctx context.Context, actor domain.User, ticket domain.Ticket) (domain.Ticket, error)
	ListByEvent(ctx context.Context, viewer *domain.User, eventID uint) ([]domain.Ticket, error)
	Get(ctx context.Context, viewer *domain.User, id uint) (domain.Ticket, error)
	Update(ctx context.Context, actor domain.User, id uint, update domain.TicketUpdate) (domain.Ticket, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
	Availability(ctx context.Context, viewer *domain.User, id uint) (domain.Availability, error)
}

type TicketHandler struct {
	svc   TicketService
	users UserGetter
}

func NewTicketHandler(svc TicketService, users UserGetter) *TicketHandler {
	return &TicketHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreateTicket godoc
// @Summary      Create a ticket type for an event
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTicketRequest  true  "request body"
// @Success      201      {object}  domain.Ticket
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /tickets [post]
// @Security BearerAuth
func (h *TicketHandler) HandleCreateTicket(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTicketRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticket, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreateTicket -> h.svc.Create -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Ticket created successfully",
		"ticket":  ticket,
	})
}

// HandleListEventTickets godoc
// @Summary      List tickets of an event
// @Tags         tickets
// @Produce      json
// @Param        eventId  path      int  true  "event ID"
// @Success      200      {array}   domain.Ticket
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /tickets/event/{eventId} [get]
func (h *TicketHandler) HandleListEventTickets(ctx *gin.Context) {
	eventID, respErr := parseID(ctx, "eventId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.svc.ListByEvent(ctx.Request.Context(), viewer(ctx, h.users), eventID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListEventTickets -> h.svc.ListByEvent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tickets retrieved successfully",
		"tickets": tickets,
	})
}

// HandleGetTicket godoc
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      int  true  "ticket ID"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  response.Err
// @Router       /tickets/{id} [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticket, err := h.svc.Get(ctx.Request.Context(), viewer(ctx, h.users), id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetTicket -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Ticket retrieved successfully",
		"ticket":  ticket,
	})
}

// HandleUpdateTicket godoc
// @Summary      Update a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "ticket ID"
// @Param        request  body      request.UpdateTicketRequest  true  "request body"
// @Success      200      {object}  domain.Ticket
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /tickets/{id} [put]
// @Security BearerAuth
func (h *TicketHandler) HandleUpdateTicket(ctx *gin.Context) {
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

	var req request.UpdateTicketRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticket, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateTicket -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Ticket updated successfully",
		"ticket":  ticket,
	})
}

// HandleDeleteTicket godoc
// @Summary      Delete a ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      int  true  "ticket ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /tickets/{id} [delete]
// @Security BearerAuth
func (h *TicketHandler) HandleDeleteTicket(ctx *gin.Context) {
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
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeleteTicket -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Ticket deleted successfully",
	})
}

// HandleCheckAvailability godoc
// @Summary      Remaining capacity of a ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      int  true  "ticket ID"
// @Success      200  {object}  domain.Availability
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /tickets/check-availability/{id} [get]
func (h *TicketHandler) HandleCheckAvailability(ctx *gin.Context) {
	id, respErr := parseID(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	availability, err := h.svc.Availability(ctx.Request.Context(), viewer(ctx, h.users), id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCheckAvailability -> h.svc.Availability -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Ticket availability retrieved successfully",
		"availability": availability,
	})
}
