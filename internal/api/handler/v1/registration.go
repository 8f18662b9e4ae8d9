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

type RegistrationService interface {
	Register(ctx context.Context, actor domain.User, eventID, ticketID uint, quantity int) (domain.Registration, error)
	MyRegistrations(ctx context.Context, actor domain.User, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error)
	ByEvent(ctx context.Context, actor domain.User, eventID uint) ([]domain.Registration, error)
	Get(ctx context.Context, actor domain.User, id uint) (domain.Registration, error)
	Update(ctx context.Context, actor domain.User, id uint, quantity int) (domain.Registration, error)
	Cancel(ctx context.Context, actor domain.User, id uint) (domain.Registration, error)
}

type RegistrationHandler struct {
	svc   RegistrationService
	users UserGetter
}

func NewRegistrationHandler(svc RegistrationService, users UserGetter) *RegistrationHandler {
	return &RegistrationHandler{
		svc:   svc,
		users: users,
	}
}

// HandleRegister godoc
// @Summary      Register for an event
// @Tags         attendees
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterAttendeeRequest  true  "request body"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /attendees/register [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterAttendeeRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reg, err := h.svc.Register(ctx.Request.Context(), actor, req.EventID, req.TicketID, req.Quantity)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":      "Registration successful",
		"registration": reg,
	})
}

// HandleMyRegistrations godoc
// @Summary      List the caller's registrations
// @Tags         attendees
// @Produce      json
// @Param        status  query     string  false  "status filter"
// @Param        page    query     int     false  "page number"
// @Param        limit   query     int     false  "page size"
// @Success      200     {array}   domain.Registration
// @Failure      400     {object}  response.Err
// @Router       /attendees/my-registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleMyRegistrations(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var q request.RegistrationQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	filter := domain.RegistrationFilter{Status: domain.RegistrationStatus(q.Status)}
	regs, total, err := h.svc.MyRegistrations(ctx.Request.Context(), actor, filter, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleMyRegistrations -> h.svc.MyRegistrations -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":       "Registrations retrieved successfully",
		"registrations": regs,
		"pagination":    page.Paginate(total),
	})
}

// HandleEventRegistrations godoc
// @Summary      List registrations of an event
// @Tags         attendees
// @Produce      json
// @Param        eventId  path      int  true  "event ID"
// @Success      200      {array}   domain.Registration
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /attendees/event/{eventId} [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleEventRegistrations(ctx *gin.Context) {
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

	regs, err := h.svc.ByEvent(ctx.Request.Context(), actor, eventID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleEventRegistrations -> h.svc.ByEvent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":       "Registrations retrieved successfully",
		"registrations": regs,
	})
}

// HandleGetRegistration godoc
// @Summary      Get a registration
// @Tags         attendees
// @Produce      json
// @Param        id   path      int  true  "registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /attendees/{id} [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetRegistration(ctx *gin.Context) {
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

	reg, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetRegistration -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Registration retrieved successfully",
		"registration": reg,
	})
}

// HandleUpdateRegistration godoc
// @Summary      Change the quantity of a registration
// @Tags         attendees
// @Accept       json
// @Produce      json
// @Param        id       path      int                                true  "registration ID"
// @Param        request  body      request.UpdateRegistrationRequest  true  "request body"
// @Success      200      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /attendees/{id} [put]
// @Security BearerAuth
func (h *RegistrationHandler) HandleUpdateRegistration(ctx *gin.Context) {
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

	var req request.UpdateRegistrationRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reg, err := h.svc.Update(ctx.Request.Context(), actor, id, req.Quantity)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateRegistration -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Registration updated successfully",
		"registration": reg,
	})
}

// HandleCancelRegistration godoc
// @Summary      Cancel a registration
// @Tags         attendees
// @Produce      json
// @Param        id   path      int  true  "registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /attendees/{id} [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleCancelRegistration(ctx *gin.Context) {
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

	reg, err := h.svc.Cancel(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCancelRegistration -> h.svc.Cancel -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Registration cancelled successfully",
		"registration": reg,
	})
}
