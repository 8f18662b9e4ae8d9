package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/service"
)

type PaymentService interface {
	Process(ctx context.Context, actor domain.User, req service.PaymentRequest) (domain.Registration, error)
	History(ctx context.Context, actor domain.User, status domain.RegistrationStatus, page domain.Page) ([]domain.Registration, int64, error)
	Refund(ctx context.Context, actor domain.User, id uint, reason string) (domain.Registration, error)
	Details(ctx context.Context, actor domain.User, id uint) (domain.Registration, error)
}

type PaymentHandler struct {
	svc   PaymentService
	users UserGetter
}

func NewPaymentHandler(svc PaymentService, users UserGetter) *PaymentHandler {
	return &PaymentHandler{
		svc:   svc,
		users: users,
	}
}

// HandleProcessPayment godoc
// @Summary      Pay for tickets and register
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.ProcessPaymentRequest  true  "request body"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /payments/process [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleProcessPayment(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProcessPaymentRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reg, err := h.svc.Process(ctx.Request.Context(), actor, service.PaymentRequest{
		EventID:  req.EventID,
		TicketID: req.TicketID,
		Quantity: req.Quantity,
		Method:   req.PaymentMethod,
		Token:    req.PaymentToken,
	})
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleProcessPayment -> h.svc.Process -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":      "Payment processed successfully",
		"registration": reg,
	})
}

// HandlePaymentHistory godoc
// @Summary      List the caller's paid registrations
// @Tags         payments
// @Produce      json
// @Param        status  query     string  false  "status filter"
// @Param        page    query     int     false  "page number"
// @Param        limit   query     int     false  "page size"
// @Success      200     {array}   domain.Registration
// @Failure      400     {object}  response.Err
// @Router       /payments/history [get]
// @Security BearerAuth
func (h *PaymentHandler) HandlePaymentHistory(ctx *gin.Context) {
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
	payments, total, err := h.svc.History(ctx.Request.Context(), actor, domain.RegistrationStatus(q.Status), page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandlePaymentHistory -> h.svc.History -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Payment history retrieved successfully",
		"payments":   payments,
		"pagination": page.Paginate(total),
	})
}

// HandleRefund godoc
// @Summary      Refund a paid registration
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true   "registration ID"
// @Param        request  body      request.RefundRequest  false  "request body"
// @Success      200      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /payments/refund/{id} [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleRefund(ctx *gin.Context) {
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

	var req request.RefundRequest
	if ctx.Request.ContentLength != 0 {
		if respErr := bindJSON(ctx, &req); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}
	}

	reg, err := h.svc.Refund(ctx.Request.Context(), actor, id, req.Reason)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleRefund -> h.svc.Refund -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Refund processed successfully",
		"registration": reg,
	})
}

// HandlePaymentDetails godoc
// @Summary      Payment details of a registration
// @Tags         payments
// @Produce      json
// @Param        id   path      int  true  "registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /payments/{id} [get]
// @Security BearerAuth
func (h *PaymentHandler) HandlePaymentDetails(ctx *gin.Context) {
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

	reg, err := h.svc.Details(ctx.Request.Context(), actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandlePaymentDetails -> h.svc.Details -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Payment details retrieved successfully",
		"payment": reg,
	})
}
