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

type QAService interface {
	Ask(ctx context.Context, actor domain.User, eventID uint, question string) (domain.QA, error)
	ListByEvent(ctx context.Context, viewer *domain.User, eventID uint, filter domain.QAFilter, page domain.Page) ([]domain.QA, int64, error)
	MyQuestions(ctx context.Context, actor domain.User, page domain.Page) ([]domain.QA, int64, error)
	Get(ctx context.Context, viewer *domain.User, id uint) (domain.QA, error)
	Update(ctx context.Context, actor domain.User, id uint, update domain.QAUpdate) (domain.QA, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
	Answer(ctx context.Context, actor domain.User, id uint, answer string) (domain.QA, error)
}

type QAHandler struct {
	svc   QAService
	users UserGetter
}

func NewQAHandler(svc QAService, users UserGetter) *QAHandler {
	return &QAHandler{
		svc:   svc,
		users: users,
	}
}

// HandleAsk godoc
// @Summary      Ask a question about an event
// @Tags         qa
// @Accept       json
// @Produce      json
// @Param        request  body      request.AskQuestionRequest  true  "request body"
// @Success      201      {object}  domain.QA
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /qa [post]
// @Security BearerAuth
func (h *QAHandler) HandleAsk(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.users)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AskQuestionRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	qa, err := h.svc.Ask(ctx.Request.Context(), actor, req.EventID, req.Question)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleAsk -> h.svc.Ask -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Question submitted successfully",
		"qa":      qa,
	})
}

// HandleListEventQuestions godoc
// @Summary      List questions of an event
// @Tags         qa
// @Produce      json
// @Param        eventId  path      int     true   "event ID"
// @Param        status   query     string  false  "status filter"
// @Param        page     query     int     false  "page number"
// @Param        limit    query     int     false  "page size"
// @Success      200      {array}   domain.QA
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /qa/event/{eventId} [get]
// @Security BearerAuth
func (h *QAHandler) HandleListEventQuestions(ctx *gin.Context) {
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

	var q request.QAQuery
	if respErr := bindQuery(ctx, &q); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := q.ToPage()
	filter := domain.QAFilter{Status: domain.QAStatus(q.Status)}
	questions, total, err := h.svc.ListByEvent(ctx.Request.Context(), &actor, eventID, filter, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListEventQuestions -> h.svc.ListByEvent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Q&A retrieved successfully",
		"qas":        questions,
		"pagination": page.Paginate(total),
	})
}

// HandleMyQuestions godoc
// @Summary      List the caller's questions
// @Tags         qa
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {array}   domain.QA
// @Router       /qa/my-questions [get]
// @Security BearerAuth
func (h *QAHandler) HandleMyQuestions(ctx *gin.Context) {
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
	questions, total, err := h.svc.MyQuestions(ctx.Request.Context(), actor, page)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleMyQuestions -> h.svc.MyQuestions -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Q&A retrieved successfully",
		"qas":        questions,
		"pagination": page.Paginate(total),
	})
}

// HandleGetQuestion godoc
// @Summary      Get a question
// @Tags         qa
// @Produce      json
// @Param        id   path      int  true  "question ID"
// @Success      200  {object}  domain.QA
// @Failure      404  {object}  response.Err
// @Router       /qa/{id} [get]
// @Security BearerAuth
func (h *QAHandler) HandleGetQuestion(ctx *gin.Context) {
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

	qa, err := h.svc.Get(ctx.Request.Context(), &actor, id)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetQuestion -> h.svc.Get -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Q&A retrieved successfully",
		"qa":      qa,
	})
}

// HandleUpdateQuestion godoc
// @Summary      Edit a question or change its status
// @Tags         qa
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "question ID"
// @Param        request  body      request.UpdateQuestionRequest  true  "request body"
// @Success      200      {object}  domain.QA
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /qa/{id} [put]
// @Security BearerAuth
func (h *QAHandler) HandleUpdateQuestion(ctx *gin.Context) {
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

	var req request.UpdateQuestionRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	qa, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateQuestion -> h.svc.Update -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Q&A updated successfully",
		"qa":      qa,
	})
}

// HandleDeleteQuestion godoc
// @Summary      Delete a question
// @Tags         qa
// @Produce      json
// @Param        id   path      int  true  "question ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /qa/{id} [delete]
// @Security BearerAuth
func (h *QAHandler) HandleDeleteQuestion(ctx *gin.Context) {
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
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleDeleteQuestion -> h.svc.Delete -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Q&A deleted successfully",
	})
}

// HandleAnswer godoc
// @Summary      Answer a question
// @Description  Organizer of the event or admin.
// @Tags         qa
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "question ID"
// @Param        request  body      request.AnswerRequest  true  "request body"
// @Success      200      {object}  domain.QA
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /qa/{id}/answer [post]
// @Security BearerAuth
func (h *QAHandler) HandleAnswer(ctx *gin.Context) {
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

	var req request.AnswerRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	qa, err := h.svc.Answer(ctx.Request.Context(), actor, id, req.Answer)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleAnswer -> h.svc.Answer -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Question answered successfully",
		"qa":      qa,
	})
}
